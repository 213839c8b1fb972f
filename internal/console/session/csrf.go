package session

// CSRF header pair attached to every state-changing request.
const (
	HeaderCSRFToken     = "X-CSRF-Token"
	HeaderRequestedWith = "X-Requested-With"
	RequestedWithValue  = "XMLHttpRequest"
)

// SecurityError reports a client-side security policy violation, such as an
// origin outside the allow-list. It is fatal for the single operation that
// raised it: the request must not be sent.
type SecurityError struct {
	Reason string
}

func (e *SecurityError) Error() string {
	return "security error: " + e.Reason
}

// Guard derives the anti-forgery header set for mutating requests. It is
// defense-in-depth for an API consumed only by this console, not a
// substitute for server-side CSRF verification.
type Guard struct {
	origin  string
	allowed map[string]struct{}
	tracker *Tracker
}

// NewGuard builds a guard for the configured client origin against the
// fixed allow-list (production origin plus known development origins).
func NewGuard(origin string, allowlist []string, tracker *Tracker) *Guard {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, a := range allowlist {
		allowed[a] = struct{}{}
	}
	return &Guard{origin: origin, allowed: allowed, tracker: tracker}
}

// ValidateOrigin reports whether the client origin is in the allow-list.
func (g *Guard) ValidateOrigin() bool {
	_, ok := g.allowed[g.origin]
	return ok
}

// Headers returns the CSRF header pair for a state-changing request, or a
// SecurityError when the origin is not allow-listed.
func (g *Guard) Headers() (map[string]string, error) {
	if !g.ValidateOrigin() {
		return nil, &SecurityError{Reason: "origin not in allow-list: " + g.origin}
	}

	return map[string]string{
		HeaderCSRFToken:     g.tracker.CSRFToken(),
		HeaderRequestedWith: RequestedWithValue,
	}, nil
}
