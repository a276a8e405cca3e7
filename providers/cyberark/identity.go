package cyberark

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/secopshq/cyberark-policy-retriever/providers"
	cyberarkmodels "github.com/secopshq/cyberark-policy-retriever/providers/cyberark/cyberark_models"
	"github.com/secopshq/cyberark-policy-retriever/services/monitoring/logging"
	"github.com/secopshq/cyberark-policy-retriever/services/security"
	"github.com/secopshq/cyberark-policy-retriever/utils"
)

// IdentityProvider exchanges client credentials for platform bearer tokens on
// the tenant's id.cyberark.cloud endpoint.
type IdentityProvider struct {
	providers.BaseProvider
	config *IdentityConfig
	tokens *security.TokenCache
}

type IdentityConfig struct {
	// BaseURL overrides the tenant-derived endpoint; normally empty.
	BaseURL string `mapstructure:"CYBERARK_IDENTITY_URL"`
}

func NewIdentityProvider(logger *logging.Logger) *IdentityProvider {

	var c IdentityConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	return NewIdentityProviderWithConfig(&c, logger)
}

func NewIdentityProviderWithConfig(c *IdentityConfig, logger *logging.Logger) *IdentityProvider {
	return &IdentityProvider{
		BaseProvider: providers.BaseProvider{
			Name:    providers.Identity,
			BaseURL: c.BaseURL,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: c,
		tokens: security.NewTokenCache(),
	}
}

func (p *IdentityProvider) tokenURL(tenantID string) (string, error) {
	baseURL := p.config.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.id.cyberark.cloud", tenantID)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %v", err)
	}

	// Path params
	base.Path += "/oauth2/platformtoken"

	return base.String(), nil
}

// PlatformToken performs the OAuth 2.0 client-credentials exchange. A token
// already held for this tenant and client is reused for as long as the
// service said it would live.
func (p *IdentityProvider) PlatformToken(tenantID, clientID, clientSecret string) (*cyberarkmodels.PlatformTokenResponse, error) {

	cacheKey := fmt.Sprintf("platformtoken/%s/%s", tenantID, clientID)
	if cached, err := p.tokens.Get(cacheKey); err == nil {
		if token, ok := cached.(*cyberarkmodels.PlatformTokenResponse); ok {
			return token, nil
		}
	}

	requestURL, err := p.tokenURL(tenantID)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)

	resp, err := p.MakeFormRequest("POST", requestURL, form, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Check the status code
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		p.Logger.Error("resp", string(respBody))
		return nil, fmt.Errorf("unexpected status code: %d \nURL: %s", resp.StatusCode, resp.Request.URL)
	}

	// Decode the response body
	var token cyberarkmodels.PlatformTokenResponse
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&token)
	if err != nil {
		return nil, fmt.Errorf("error decoding response body: %w", err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response carries no access_token")
	}

	p.tokens.Insert(cacheKey, &token, time.Duration(token.ExpiresIn)*time.Second)

	return &token, nil
}
