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
	"github.com/secopshq/cyberark-policy-retriever/utils"
)

// SIAProvider lists Secure Infrastructure Access policies for a tenant
// subdomain. SIA listings live on the uap host, not a sia one.
type SIAProvider struct {
	providers.BaseProvider
	config *SIAConfig
}

type SIAConfig struct {
	// BaseURL overrides the subdomain-derived endpoint; normally empty.
	BaseURL string `mapstructure:"CYBERARK_SIA_URL"`
}

func NewSIAProvider(logger *logging.Logger) *SIAProvider {

	var c SIAConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	return NewSIAProviderWithConfig(&c, logger)
}

func NewSIAProviderWithConfig(c *SIAConfig, logger *logging.Logger) *SIAProvider {
	return &SIAProvider{
		BaseProvider: providers.BaseProvider{
			Name:    providers.SIA,
			BaseURL: c.BaseURL,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: c,
	}
}

func (p *SIAProvider) policiesURL(subdomain string) (string, error) {
	baseURL := p.config.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.uap.cyberark.cloud", subdomain)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %v", err)
	}

	// Path params
	base.Path += "/api/policies"

	return base.String(), nil
}

// ListPolicies retrieves every Secure Infrastructure Access policy visible to
// the bearer token.
func (p *SIAProvider) ListPolicies(subdomain, token string) (*cyberarkmodels.SIAPolicyList, error) {

	var requiredHeaders = make(map[string]string)
	requiredHeaders["Authorization"] = "Bearer " + token

	requestURL, err := p.policiesURL(subdomain)
	if err != nil {
		return nil, err
	}

	resp, err := p.MakeRequest("GET", requestURL, nil, requiredHeaders)
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
	var policies cyberarkmodels.SIAPolicyList
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&policies)
	if err != nil {
		return nil, fmt.Errorf("error decoding response body: %w", err)
	}

	return &policies, nil
}
