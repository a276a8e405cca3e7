package secrets

// assumes the ambient AWS credential chain (environment, shared profile or
// instance role) grants secretsmanager:GetSecretValue on the configured
// secret; no static AWS keys are read from this project's configuration

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/go-playground/validator/v10"
	"github.com/secopshq/cyberark-policy-retriever/services/monitoring/logging"
)

// CredentialBundle is the CyberArk API credential set stored as a JSON object
// in AWS Secrets Manager. Every field is required; the bundle is immutable
// for the run and never persisted.
type CredentialBundle struct {
	IdentityTenantID string `json:"identity_tenant_id" validate:"required"`
	Subdomain        string `json:"subdomain" validate:"required"`
	ClientID         string `json:"client_id" validate:"required"`
	ClientSecret     string `json:"client_secret" validate:"required"`
}

// Redact masks the client secret for logging.
func (b *CredentialBundle) Redact() CredentialBundle {
	redacted := *b
	redacted.ClientSecret = "****"
	return redacted
}

type SecretsService struct {
	client     secretsmanageriface.SecretsManagerAPI
	secretName string
	validate   *validator.Validate
	logger     *logging.Logger
}

func NewSecretsService(secretName string, region string, logger *logging.Logger) *SecretsService {
	sess := session.Must(session.NewSession(
		&aws.Config{
			Region: aws.String(region),
		},
	))

	return NewSecretsServiceWithClient(secretsmanager.New(sess), secretName, logger)
}

func NewSecretsServiceWithClient(client secretsmanageriface.SecretsManagerAPI, secretName string, logger *logging.Logger) *SecretsService {
	return &SecretsService{
		client:     client,
		secretName: secretName,
		validate:   validator.New(),
		logger:     logger,
	}
}

// RetrieveCredentials performs the single GetSecretValue lookup and verifies
// all four required fields arrived.
func (s *SecretsService) RetrieveCredentials() (*CredentialBundle, error) {
	result, err := s.client.GetSecretValue(&secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretName),
	})
	if err != nil {
		s.logger.Error("Secret store lookup failed", err)
		return nil, NewConfigurationError(classifyStoreError(err), s.secretName, err)
	}

	if result.SecretString == nil {
		return nil, NewConfigurationError(ErrSecretEmpty, s.secretName)
	}

	var bundle CredentialBundle
	if err := json.Unmarshal([]byte(*result.SecretString), &bundle); err != nil {
		return nil, NewConfigurationError(ErrSecretMalformed, s.secretName, err)
	}

	if err := s.validate.Struct(&bundle); err != nil {
		return nil, NewConfigurationError(ErrSecretFieldMissing, s.secretName, err)
	}

	s.logger.Info("Credential bundle retrieved", bundle.Redact())

	return &bundle, nil
}

// classifyStoreError folds the AWS error space into the sentinels the
// operator message is built from.
func classifyStoreError(err error) error {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return ErrSecretUnavailable
	}

	switch aerr.Code() {
	case secretsmanager.ErrCodeResourceNotFoundException:
		return ErrSecretNotFound
	case "AccessDeniedException", "UnrecognizedClientException":
		return ErrSecretAccessDenied
	default:
		return ErrSecretUnavailable
	}
}
