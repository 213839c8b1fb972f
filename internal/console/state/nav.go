package state

import (
	"context"
	"strings"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/security"
)

// Console routes. Everything under PathAdmin requires the admin role.
const (
	PathRoot     = "/"
	PathSignIn   = "/sign-in"
	PathForgot   = "/forgot-password"
	PathAdmin    = "/admin"
	PathNotFound = "/not-found"
)

var publicPaths = map[string]struct{}{
	PathRoot:     {},
	PathSignIn:   {},
	PathForgot:   {},
	PathNotFound: {},
}

var adminSections = map[string]struct{}{
	"":             {}, // /admin itself, the dashboard
	"applications": {},
	"users":        {},
	"certificates": {},
	"payments":     {},
}

// Authorizer is the slice of the auth manager the navigator needs.
type Authorizer interface {
	IsAuthenticated(ctx context.Context) bool
	IsAdmin() bool
}

// Navigator resolves navigation targets against a fixed allow-list and the
// operator's auth state. Unknown or external targets never resolve; they
// land on the not-found route and leave an audit event behind.
type Navigator struct {
	auth     Authorizer
	recorder *security.Recorder
}

func NewNavigator(auth Authorizer, recorder *security.Recorder) *Navigator {
	return &Navigator{auth: auth, recorder: recorder}
}

// Resolve maps a requested target to the route that will actually be
// shown. External targets and paths outside the allow-list are rejected,
// unauthenticated operators are redirected to sign-in, and non-admins are
// kept out of the admin area.
func (n *Navigator) Resolve(ctx context.Context, target string) string {
	if !n.allowed(target) {
		n.recorder.Record(ctx, domain.EventNavigationRejected, target)
		return PathNotFound
	}

	if !strings.HasPrefix(target, PathAdmin) {
		return target
	}

	if !n.auth.IsAuthenticated(ctx) {
		return PathSignIn
	}
	if !n.auth.IsAdmin() {
		n.recorder.Record(ctx, domain.EventNavigationRejected, target)
		return PathNotFound
	}
	return target
}

func (n *Navigator) allowed(target string) bool {
	// Anything that parses as an absolute URL or protocol-relative
	// reference is external and rejected outright.
	if strings.Contains(target, "://") || strings.HasPrefix(target, "//") {
		return false
	}
	if target == "" || target[0] != '/' {
		return false
	}

	if _, ok := publicPaths[target]; ok {
		return true
	}

	if target == PathAdmin {
		return true
	}
	if rest, ok := strings.CutPrefix(target, PathAdmin+"/"); ok {
		section, _, _ := strings.Cut(rest, "/")
		_, ok := adminSections[section]
		return ok
	}
	return false
}
