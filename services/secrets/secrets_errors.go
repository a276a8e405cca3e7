package secrets

import "fmt"

var (
	ErrSecretNotFound     = fmt.Errorf("secret not found")
	ErrSecretAccessDenied = fmt.Errorf("access to secret denied")
	ErrSecretUnavailable  = fmt.Errorf("could not reach the secret store")
	ErrSecretEmpty        = fmt.Errorf("secret carries no string payload")
	ErrSecretMalformed    = fmt.Errorf("secret payload is not valid JSON")
	ErrSecretFieldMissing = fmt.Errorf("secret is missing a required field")
)

// ConfigurationError covers every way the credential bundle can fail to
// materialize. It always fires before the first CyberArk call.
type ConfigurationError struct {
	ErrorObj   error
	SecretName string
	Other      []error
}

func (c *ConfigurationError) Error() string {
	return c.ErrorObj.Error()
}

func (c *ConfigurationError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", c.ErrorObj.Error(), c.SecretName)
}

func NewConfigurationError(err error, secretName string, e ...error) *ConfigurationError {
	return &ConfigurationError{
		ErrorObj:   err,
		SecretName: secretName,
		Other:      e,
	}
}
