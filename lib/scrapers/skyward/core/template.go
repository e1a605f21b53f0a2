package core

// loginTemplate is replayed to the login endpoint as is, the portal checks
// that a plausible browser submitted the login form.
var loginTemplate = Form{
	"AllowSpecial":       "false",
	"Browser":            "Moz",
	"BrowserPlatform":    "MacIntel",
	"BrowserVersion":     "61",
	"CurrentProgram":     "skyportlogin.w",
	"CurrentVersion":     "010173",
	"HomePage":           "sepadm01.w",
	"HomePageMenuID":     "0",
	"PaCVersion":         "05.18.06.00.09-11.7",
	"SecurityMenuID":     "0",
	"SuperVersion":       "012090",
	"TouchDevice":        "false",
	"UserLookupLevel":    "5",
	"UserSecLevel":       "5",
	"brwsInfo":           "Firefox 61",
	"cUserRole":          "family/student",
	"codeType":           "tryLogin",
	"disableAnimations":  "yes",
	"duserid":            "-1",
	"fwtimestamp":        "1536275256905",
	"hAlternateColors":   "true",
	"hAnon":              "bjlbYpAByijcxUsV",
	"hAutoOpenPref":      "no",
	"hButtonHotKeyIDs":   "bCancel",
	"hButtonHotKeys":     "B",
	"hCompName":          "SKYWEB31A",
	"hDisplayBorder":     "true",
	"hIPInfo":            "",
	"hLoadTime":          ".042",
	"hNavSearchOption":   "all",
	"hNotificationsJSON": "[]",
	"hOSName":            "Windows NT",
	"hOpenSave":          "no",
	"hScrollBarWidth":    "17",
	"hSecCache":          "0 items in 0 entities",
	"hforgotLoginPage":   "fwemnu01",
	"lip":                "192.168.0.100",
	"loginID":            "-1",
	"method":             "extrainfo",
	"nameid":             "-1",
	"noheader":           "yes",
	"osName":             "",
	"pCountry":           "US",
	"pState":             "IL",
	"pageused":           "Desktop",
	"recordLimit":        "30",
	"requestAction":      "eel",
	"screenHeight":       "900",
	"screenWidth":        "1440",
	"subversion":         "61",
	"supported":          "true",
	"userAgent":          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.13; rv:61.0) Gecko/20100101 Firefox/61.0",
}

// LoginForm returns the form posted to the login endpoint.
func LoginForm(username, password string) Form {
	return loginTemplate.With(Form{
		"codeValue": username,
		"login":     username,
		"password":  password,
	})
}

// loginHeaders are sent along with the login form.
func loginHeaders(baseUrl string) map[string]string {
	return map[string]string{
		"Accept":          "*/*",
		"Accept-Language": "en-US,en;q=0.5",
		"Referer":         baseUrl + "/fwemnu01.w",
	}
}
