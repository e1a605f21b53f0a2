package core

import "strings"

const (
	stage_login_response = "login response"
	stage_cdata_fragment = "cdata fragment"
)

// Form is a set of url-encoded form parameters.
type Form map[string]string

// With returns a copy of f with the entries of other added on top.
func (f Form) With(other Form) Form {
	out := make(Form, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// LoginData is what the login endpoint hands back: where to go next and the
// parameters to go there with.
type LoginData struct {
	NewUrl string
	EncSes string
	Params Form
}

const (
	login_field_new_url = 7
	login_field_enc     = 13
	login_field_encses  = 14
	login_field_count   = 15
)

// positions of the named fields in the caret-delimited login response.
var loginFieldNames = map[int]string{
	0:                  "dwd",
	1:                  "web-data-recid",
	2:                  "wfaacl-recid",
	3:                  "wfaacl",
	4:                  "nameid",
	5:                  "duserid",
	6:                  "User-Type",
	login_field_enc:    "enc",
	login_field_encses: "encses",
}

// DecodeLoginResponse decodes the login endpoint's response, which is a list
// of '^' separated values optionally wrapped in <li> tags.
func DecodeLoginResponse(baseUrl, text string) (LoginData, error) {
	text = strings.ReplaceAll(text, "<li>", "")
	text = strings.ReplaceAll(text, "</li>", "")

	values := strings.Split(text, "^")
	if len(values) < login_field_count {
		return LoginData{}, Malformed(
			stage_login_response,
			"expected at least %d fields, got %d",
			login_field_count, len(values),
		)
	}

	params := make(Form, len(loginFieldNames))
	for idx, name := range loginFieldNames {
		params[name] = values[idx]
	}

	return LoginData{
		NewUrl: baseUrl + "/" + values[login_field_new_url],
		EncSes: values[login_field_encses],
		Params: params,
	}, nil
}

const (
	cdataStart = "<![CDATA["
	cdataEnd   = "]]"
)

// ExtractCDATA returns the contents of the first CDATA block in text. The
// first character of the closing "]]" is kept, the portal's markup has
// always been parsed that way.
func ExtractCDATA(text string) (string, error) {
	start := strings.Index(text, cdataStart)
	if start < 0 {
		return "", Malformed(stage_cdata_fragment, "could not find %q", cdataStart)
	}
	start += len(cdataStart)

	end := strings.Index(text[start:], cdataEnd)
	if end < 0 {
		return "", Malformed(stage_cdata_fragment, "could not find closing %q", cdataEnd)
	}
	return text[start : start+end+1], nil
}
