package json

type TokenRS struct {
	Scope            string `json:"scope"`
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	AppID            string `json:"app_id"`
	ExpiresIn        int    `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (t TokenRS) ErrorMessage() string {
	if t.Error == "" {
		return ""
	}

	if t.ErrorDescription != "" {
		return t.Error + ": " + t.ErrorDescription
	}

	return t.Error
}
