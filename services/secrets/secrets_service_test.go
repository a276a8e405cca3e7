package secrets

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/google/go-cmp/cmp"

	"github.com/secopshq/cyberark-policy-retriever/services/monitoring/logging"
)

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	output      *secretsmanager.GetSecretValueOutput
	err         error
	gotSecretID string
}

func (f *fakeSecretsManager) GetSecretValue(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	f.gotSecretID = aws.StringValue(input.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func newTestService(client secretsmanageriface.SecretsManagerAPI) *SecretsService {
	return NewSecretsServiceWithClient(client, "cyberark/api-credentials", logging.NewLogger())
}

func TestRetrieveCredentials(t *testing.T) {
	client := &fakeSecretsManager{
		output: &secretsmanager.GetSecretValueOutput{
			SecretString: aws.String(`{
				"identity_tenant_id": "acme123",
				"subdomain": "acme",
				"client_id": "svc-user",
				"client_secret": "svc-pass"
			}`),
		},
	}

	bundle, err := newTestService(client).RetrieveCredentials()
	if err != nil {
		t.Fatal(err)
	}
	if client.gotSecretID != "cyberark/api-credentials" {
		t.Fatalf("secret id=%q", client.gotSecretID)
	}

	want := &CredentialBundle{
		IdentityTenantID: "acme123",
		Subdomain:        "acme",
		ClientID:         "svc-user",
		ClientSecret:     "svc-pass",
	}
	if diff := cmp.Diff(want, bundle); diff != "" {
		t.Fatalf("bundle diff (-want +got):\n%s", diff)
	}
}

func TestRetrieveCredentialsErrors(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeSecretsManager
		want   error
		field  string
	}{
		{
			name: "secret_not_found",
			client: &fakeSecretsManager{
				err: awserr.New(secretsmanager.ErrCodeResourceNotFoundException, "Secrets Manager can't find the specified secret.", nil),
			},
			want: ErrSecretNotFound,
		},
		{
			name: "access_denied",
			client: &fakeSecretsManager{
				err: awserr.New("AccessDeniedException", "not authorized", nil),
			},
			want: ErrSecretAccessDenied,
		},
		{
			name: "store_unreachable",
			client: &fakeSecretsManager{
				err: errors.New("dial tcp: i/o timeout"),
			},
			want: ErrSecretUnavailable,
		},
		{
			name: "binary_secret",
			client: &fakeSecretsManager{
				output: &secretsmanager.GetSecretValueOutput{SecretBinary: []byte{0x1}},
			},
			want: ErrSecretEmpty,
		},
		{
			name: "malformed_payload",
			client: &fakeSecretsManager{
				output: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("not json")},
			},
			want: ErrSecretMalformed,
		},
		{
			name: "missing_tenant_id",
			client: &fakeSecretsManager{
				output: &secretsmanager.GetSecretValueOutput{
					SecretString: aws.String(`{"subdomain": "acme", "client_id": "svc-user", "client_secret": "svc-pass"}`),
				},
			},
			want:  ErrSecretFieldMissing,
			field: "IdentityTenantID",
		},
		{
			name: "missing_subdomain",
			client: &fakeSecretsManager{
				output: &secretsmanager.GetSecretValueOutput{
					SecretString: aws.String(`{"identity_tenant_id": "acme123", "client_id": "svc-user", "client_secret": "svc-pass"}`),
				},
			},
			want:  ErrSecretFieldMissing,
			field: "Subdomain",
		},
		{
			name: "missing_client_id",
			client: &fakeSecretsManager{
				output: &secretsmanager.GetSecretValueOutput{
					SecretString: aws.String(`{"identity_tenant_id": "acme123", "subdomain": "acme", "client_secret": "svc-pass"}`),
				},
			},
			want:  ErrSecretFieldMissing,
			field: "ClientID",
		},
		{
			name: "missing_client_secret",
			client: &fakeSecretsManager{
				output: &secretsmanager.GetSecretValueOutput{
					SecretString: aws.String(`{"identity_tenant_id": "acme123", "subdomain": "acme", "client_id": "svc-user"}`),
				},
			},
			want:  ErrSecretFieldMissing,
			field: "ClientSecret",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestService(tc.client).RetrieveCredentials()
			if err == nil {
				t.Fatal("expected error")
			}

			var configurationErr *ConfigurationError
			if !errors.As(err, &configurationErr) {
				t.Fatalf("err=%T %v", err, err)
			}
			if !errors.Is(configurationErr.ErrorObj, tc.want) {
				t.Fatalf("err=%v want %v", configurationErr.ErrorObj, tc.want)
			}
			if configurationErr.SecretName != "cyberark/api-credentials" {
				t.Fatalf("secret name=%q", configurationErr.SecretName)
			}
			if tc.field != "" && !strings.Contains(fmt.Sprintf("%v", configurationErr.Other), tc.field) {
				t.Fatalf("missing field not named: %v", configurationErr.Other)
			}
		})
	}
}

func TestCredentialBundleRedact(t *testing.T) {
	bundle := &CredentialBundle{
		IdentityTenantID: "acme123",
		Subdomain:        "acme",
		ClientID:         "svc-user",
		ClientSecret:     "svc-pass",
	}

	redacted := bundle.Redact()
	if redacted.ClientSecret != "****" {
		t.Fatalf("redacted secret=%q", redacted.ClientSecret)
	}
	if bundle.ClientSecret != "svc-pass" {
		t.Fatal("redaction mutated the source bundle")
	}
}
