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

// SCAProvider lists Secure Cloud Access policies for a tenant subdomain.
type SCAProvider struct {
	providers.BaseProvider
	config *SCAConfig
}

type SCAConfig struct {
	// BaseURL overrides the subdomain-derived endpoint; normally empty.
	BaseURL string `mapstructure:"CYBERARK_SCA_URL"`
}

func NewSCAProvider(logger *logging.Logger) *SCAProvider {

	var c SCAConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	return NewSCAProviderWithConfig(&c, logger)
}

func NewSCAProviderWithConfig(c *SCAConfig, logger *logging.Logger) *SCAProvider {
	return &SCAProvider{
		BaseProvider: providers.BaseProvider{
			Name:    providers.SCA,
			BaseURL: c.BaseURL,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: c,
	}
}

func (p *SCAProvider) policiesURL(subdomain string) (string, error) {
	baseURL := p.config.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.sca.cyberark.cloud", subdomain)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %v", err)
	}

	// Path params
	base.Path += "/api/policies"

	return base.String(), nil
}

// ListPolicies retrieves every Secure Cloud Access policy visible to the
// bearer token.
func (p *SCAProvider) ListPolicies(subdomain, token string) (*cyberarkmodels.SCAPolicyList, error) {

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
	var policies cyberarkmodels.SCAPolicyList
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&policies)
	if err != nil {
		return nil, fmt.Errorf("error decoding response body: %w", err)
	}

	return &policies, nil
}
