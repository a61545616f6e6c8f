package domain

// AuthStatus mirrors the library store's authorization states.
type AuthStatus int

const (
	AuthNotDetermined AuthStatus = iota
	AuthDenied
	AuthAuthorized
	AuthLimited
)

func (s AuthStatus) String() string {
	switch s {
	case AuthNotDetermined:
		return "not_determined"
	case AuthDenied:
		return "denied"
	case AuthAuthorized:
		return "authorized"
	case AuthLimited:
		return "limited"
	default:
		return "unknown"
	}
}

// Granted reports whether the status allows reading the library.
func (s AuthStatus) Granted() bool {
	return s == AuthAuthorized || s == AuthLimited
}

// SessionState is the four-state machine the presentation shell routes on.
type SessionState int

const (
	StateLoading SessionState = iota
	StateUnauthorized
	StateEmpty
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthorized:
		return "unauthorized"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
