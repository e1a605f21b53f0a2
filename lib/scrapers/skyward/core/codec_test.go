package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeLoginResponse(t *testing.T) {
	data, err := DecodeLoginResponse(
		"https://host",
		"<li>A^B^C^D^E^F^G^page.w^h^i^j^k^m^ENC^ENCSES^</li>",
	)
	require.NoError(t, err)

	require.Equal(t, "https://host/page.w", data.NewUrl)
	require.Equal(t, "ENCSES", data.EncSes)

	expected := Form{
		"dwd":            "A",
		"web-data-recid": "B",
		"wfaacl-recid":   "C",
		"wfaacl":         "D",
		"nameid":         "E",
		"duserid":        "F",
		"User-Type":      "G",
		"enc":            "ENC",
		"encses":         "ENCSES",
	}
	if diff := cmp.Diff(expected, data.Params); diff != "" {
		t.Fatal("unexpected login params (-want +got):\n", diff)
	}
}

func TestDecodeLoginResponseTooShort(t *testing.T) {
	for _, text := range []string{
		"",
		"A^B^C",
		"A^B^C^D^E^F^G^page.w^h^i^j^k^m^ENC",
	} {
		_, err := DecodeLoginResponse("https://host", text)
		require.ErrorIs(t, err, ErrMalformedResponse, text)

		var malformed *MalformedResponseError
		require.True(t, errors.As(err, &malformed))
		require.Equal(t, stage_login_response, malformed.Stage)
	}
}

func TestDecodeLoginResponseExactFieldCount(t *testing.T) {
	data, err := DecodeLoginResponse("https://host", "A^B^C^D^E^F^G^page.w^h^i^j^k^m^ENC^ENCSES")
	require.NoError(t, err)
	require.Equal(t, "https://host/page.w", data.NewUrl)
	require.Equal(t, "ENC", data.Params["enc"])
	require.Equal(t, "ENCSES", data.Params["encses"])
}

func TestExtractCDATA(t *testing.T) {
	cases := []struct {
		text     string
		expected string
	}{
		{text: "<x><![CDATA[XYZ]]></x>", expected: "XYZ]"},
		{text: "junk<![CDATA[<div>a</div>]]>more]]", expected: "<div>a</div>]"},
		{text: "<![CDATA[]]>", expected: "]"},
	}
	for _, c := range cases {
		out, err := ExtractCDATA(c.text)
		require.NoError(t, err)
		require.Equal(t, c.expected, out)
	}
}

func TestExtractCDATAMissing(t *testing.T) {
	for _, text := range []string{"<div></div>", "<![CDATA[never closed"} {
		_, err := ExtractCDATA(text)
		require.ErrorIs(t, err, ErrMalformedResponse, text)
	}
}

func TestFormWith(t *testing.T) {
	base := Form{"a b": "c&d", "x": ""}
	form := base.With(Form{"x": "1"})
	require.Equal(t, Form{"a b": "c&d", "x": "1"}, form)
	require.Equal(t, "", base["x"])
}

func TestLoginForm(t *testing.T) {
	form := LoginForm("student", "hunter2")
	require.Equal(t, "student", form["codeValue"])
	require.Equal(t, "student", form["login"])
	require.Equal(t, "hunter2", form["password"])
	require.Equal(t, "tryLogin", form["codeType"])
	require.NotContains(t, loginTemplate, "password")
}

func TestSessionWfaacl(t *testing.T) {
	session := SessionParams{
		SessionId: "123\x15abc",
		Login:     Form{"wfaacl": "fallback"},
	}
	require.Equal(t, "abc", session.Wfaacl())

	session.SessionId = "123"
	require.Equal(t, "fallback", session.Wfaacl())

	require.Equal(t, "", SessionFromTokens("123", "enc").Wfaacl())
}
