package retrieval

import (
	"github.com/sirupsen/logrus"

	"github.com/secopshq/cyberark-policy-retriever/models"
	"github.com/secopshq/cyberark-policy-retriever/providers"
	cyberarkmodels "github.com/secopshq/cyberark-policy-retriever/providers/cyberark/cyberark_models"
	"github.com/secopshq/cyberark-policy-retriever/services/monitoring/logging"
	"github.com/secopshq/cyberark-policy-retriever/services/report"
	"github.com/secopshq/cyberark-policy-retriever/services/secrets"
	"github.com/secopshq/cyberark-policy-retriever/utils"
)

// CredentialSource yields the CyberArk credential bundle for a run.
type CredentialSource interface {
	RetrieveCredentials() (*secrets.CredentialBundle, error)
}

// TokenSource performs the OAuth 2.0 client-credentials exchange.
type TokenSource interface {
	PlatformToken(tenantID, clientID, clientSecret string) (*cyberarkmodels.PlatformTokenResponse, error)
}

// SCAPolicySource lists Secure Cloud Access policies.
type SCAPolicySource interface {
	ListPolicies(subdomain, token string) (*cyberarkmodels.SCAPolicyList, error)
}

// SIAPolicySource lists Secure Infrastructure Access policies.
type SIAPolicySource interface {
	ListPolicies(subdomain, token string) (*cyberarkmodels.SIAPolicyList, error)
}

// Result carries both policy lists of a completed run.
type Result struct {
	SCA *cyberarkmodels.SCAPolicyList
	SIA *cyberarkmodels.SIAPolicyList
}

func (r *Result) Summary() *models.RetrievalSummary {
	return models.NewRetrievalSummary(r.SCA.TotalCount(), r.SIA.TotalCount())
}

// RetrievalService drives the four-step flow: credentials, token, SCA
// listing, SIA listing. Steps run strictly in order and the first failure
// ends the run.
type RetrievalService struct {
	credentials CredentialSource
	identity    TokenSource
	sca         SCAPolicySource
	sia         SIAPolicySource
	inspector   *utils.TokenInspector
	reporter    *report.ReportService
	logger      *logging.Logger
	state       models.RunState
}

func NewRetrievalService(
	credentials CredentialSource,
	identity TokenSource,
	sca SCAPolicySource,
	sia SIAPolicySource,
	reporter *report.ReportService,
	logger *logging.Logger,
) *RetrievalService {
	return &RetrievalService{
		credentials: credentials,
		identity:    identity,
		sca:         sca,
		sia:         sia,
		inspector:   utils.NewTokenInspector(),
		reporter:    reporter,
		logger:      logger,
		state:       models.RunStateIdle,
	}
}

// State reports how far the run has progressed. A failed run leaves the
// state at the last completed step.
func (s *RetrievalService) State() models.RunState {
	return s.state
}

// Run executes the linear flow and returns both policy lists. The returned
// error is a *secrets.ConfigurationError, *AuthenticationError or
// *RetrievalError; the caller maps any of them to a non-zero exit.
func (s *RetrievalService) Run() (*Result, error) {
	s.state = models.RunStateIdle

	s.reporter.Step(1, "Retrieving credentials from AWS Secrets Manager...")
	bundle, err := s.credentials.RetrieveCredentials()
	if err != nil {
		return nil, err
	}
	s.state = models.RunStateCredentialsLoaded
	s.logger.WithField("state", s.state.String()).Info("Credentials loaded")
	s.reporter.StepDone("Credentials retrieved")

	s.reporter.Step(2, "Authenticating via OAuth 2.0...")
	token, err := s.identity.PlatformToken(bundle.IdentityTenantID, bundle.ClientID, bundle.ClientSecret)
	if err != nil {
		return nil, NewAuthenticationError(ErrTokenRequestFailed, bundle.IdentityTenantID, err)
	}
	s.state = models.RunStateAuthenticated
	s.logToken(token.AccessToken)
	s.reporter.StepDone("Bearer token acquired")

	s.reporter.Step(3, "Retrieving SCA policies...")
	scaPolicies, err := s.sca.ListPolicies(bundle.Subdomain, token.AccessToken)
	if err != nil {
		return nil, NewRetrievalError(ErrPolicyRequestFailed, providers.SCA, err)
	}
	s.reporter.StepDone("Done")

	s.reporter.Step(4, "Retrieving SIA policies...")
	siaPolicies, err := s.sia.ListPolicies(bundle.Subdomain, token.AccessToken)
	if err != nil {
		return nil, NewRetrievalError(ErrPolicyRequestFailed, providers.SIA, err)
	}
	s.state = models.RunStatePoliciesRetrieved
	s.reporter.StepDone("Done")

	result := &Result{SCA: scaPolicies, SIA: siaPolicies}
	s.state = models.RunStateDone
	s.logger.WithFields(logrus.Fields{
		"state":     s.state.String(),
		"sca_total": scaPolicies.TotalCount(),
		"sia_total": siaPolicies.TotalCount(),
	}).Info("Run complete")

	return result, nil
}

// logToken records when the freshly issued token will expire. Inspection is
// best-effort; an opaque token only downgrades the log line.
func (s *RetrievalService) logToken(token string) {
	info, err := s.inspector.Inspect(token)
	if err != nil {
		s.logger.WithField("state", s.state.String()).Debug("Token acquired, expiry not readable")
		return
	}

	entry := s.logger.WithFields(logrus.Fields{
		"state":      s.state.String(),
		"expires_at": info.ExpiresAt,
	})
	if info.Expired() {
		entry.Warn("Token is already expired")
		return
	}
	entry.Info("Token acquired")
}
