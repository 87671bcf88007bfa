package session

// State is the authentication lifecycle position of a Manager.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoggedIn
)

// String returns a lower-case label suitable for logs and CLI output.
func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged-out"
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged-in"
	default:
		return "unknown"
	}
}

// Identity is the profile returned by the identity endpoint. Its shape is
// owned by the backend, so it is kept as a generic JSON object.
type Identity map[string]any

// Name returns the most human-friendly identifier in the profile.
func (i Identity) Name() string {
	for _, key := range []string{"name", "username", "sub"} {
		if v, ok := i[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Role returns the "role" field when the backend provides one.
func (i Identity) Role() string {
	v, _ := i["role"].(string)
	return v
}

// Clone returns a shallow copy so callers cannot mutate manager state.
func (i Identity) Clone() Identity {
	if i == nil {
		return nil
	}
	out := make(Identity, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

// Snapshot is an immutable view of a session at one point in time.
type Snapshot struct {
	State    State
	Token    string
	Identity Identity
}

// Authorized reports whether protected operations may proceed.
func (s Snapshot) Authorized() bool {
	return s.State == StateLoggedIn && s.Token != ""
}
