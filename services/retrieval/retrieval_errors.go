package retrieval

import "fmt"

var (
	ErrTokenRequestFailed  = fmt.Errorf("could not obtain a platform token")
	ErrPolicyRequestFailed = fmt.Errorf("could not retrieve policies")
)

// AuthenticationError reports a failed client-credentials exchange. No
// policy endpoint is contacted after one fires.
type AuthenticationError struct {
	ErrorObj error
	TenantID string
	Other    []error
}

func (a *AuthenticationError) Error() string {
	return a.ErrorObj.Error()
}

func (a *AuthenticationError) ErrorOut() string {
	return fmt.Sprintf("%v: tenant %v", a.ErrorObj.Error(), a.TenantID)
}

func NewAuthenticationError(err error, tenantID string, e ...error) *AuthenticationError {
	return &AuthenticationError{
		ErrorObj: err,
		TenantID: tenantID,
		Other:    e,
	}
}

// RetrievalError reports which policy endpoint failed. The run stops at the
// first one, so no partial totals ever reach the summary.
type RetrievalError struct {
	ErrorObj error
	Endpoint string
	Other    []error
}

func (r *RetrievalError) Error() string {
	return r.ErrorObj.Error()
}

func (r *RetrievalError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", r.ErrorObj.Error(), r.Endpoint)
}

func NewRetrievalError(err error, endpoint string, e ...error) *RetrievalError {
	return &RetrievalError{
		ErrorObj: err,
		Endpoint: endpoint,
		Other:    e,
	}
}
