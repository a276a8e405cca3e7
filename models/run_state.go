package models

// RunState tracks the retrieval run through its linear sequence. The state
// only ever moves forward; a failed step leaves it wherever it was, which is
// how the operator can tell from the logs how far a run got.
type RunState int

const (
	RunStateIdle RunState = iota
	RunStateCredentialsLoaded
	RunStateAuthenticated
	RunStatePoliciesRetrieved
	RunStateDone
)

func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "idle"
	case RunStateCredentialsLoaded:
		return "credentials-loaded"
	case RunStateAuthenticated:
		return "authenticated"
	case RunStatePoliciesRetrieved:
		return "policies-retrieved"
	case RunStateDone:
		return "done"
	default:
		return "unknown"
	}
}
