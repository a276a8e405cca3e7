package cyberarkmodels

// PlatformTokenResponse is the body returned by the Identity platform-token
// endpoint on a successful client-credentials exchange.
type PlatformTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}
