package core

import "strings"

// SessionParams are the tokens that identify a logged in portal session.
// They are opaque, the only thing done with them is to send them back.
type SessionParams struct {
	SessionId string
	EncSes    string
	// Login holds the parameters handed out by the login endpoint.
	Login Form
}

// SessionFromTokens resumes a session from previously obtained tokens
// without going through the handshake again.
func SessionFromTokens(sessionId, encses string) SessionParams {
	return SessionParams{
		SessionId: sessionId,
		EncSes:    encses,
	}
}

// Wfaacl returns the access control token, which is embedded in the session
// id after a \x15 separator. It falls back to the value given at login.
func (s SessionParams) Wfaacl() string {
	parts := strings.Split(s.SessionId, "\x15")
	if len(parts) >= 2 {
		return parts[1]
	}
	return s.Login["wfaacl"]
}
