// Package gate decides, per request, whether a page path may be served,
// and enforces the role policy for API routes.
package gate

import (
	"strings"

	"travelnest_backend/platform/session"
)

// RouteClass is the tagged classification of a request path.
type RouteClass int

const (
	// ClassAPIAuth covers the sign-in endpoints under /api/auth.
	ClassAPIAuth RouteClass = iota
	// ClassAPI covers every other /api path; the Policy guards those.
	ClassAPI
	// ClassAuthPage is /login and /register.
	ClassAuthPage
	// ClassPublic pages are served to anyone.
	ClassPublic
	// ClassAdmin pages require the admin role.
	ClassAdmin
	// ClassProtected pages require any session.
	ClassProtected
)

func (c RouteClass) String() string {
	switch c {
	case ClassAPIAuth:
		return "api-auth"
	case ClassAPI:
		return "api"
	case ClassAuthPage:
		return "auth-page"
	case ClassPublic:
		return "public"
	case ClassAdmin:
		return "admin"
	default:
		return "protected"
	}
}

// Redirect targets.
const (
	HomePath      = "/"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

var (
	publicExact    = map[string]bool{"/": true, "/contact": true, "/destinations": true}
	publicPrefixes = []string{"/blog", "/packages"}
	authPages      = map[string]bool{"/login": true, "/register": true}
)

// Classify maps a path to its route class. Prefix rules are plain string
// prefixes: /blog, /blog/x and /blogger are all public.
func Classify(path string) RouteClass {
	if path == "" {
		path = "/"
	}
	switch {
	case strings.HasPrefix(path, "/api/auth"):
		return ClassAPIAuth
	case strings.HasPrefix(path, "/api"):
		return ClassAPI
	case authPages[path]:
		return ClassAuthPage
	case publicExact[path]:
		return ClassPublic
	case strings.HasPrefix(path, "/admin"):
		return ClassAdmin
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return ClassPublic
		}
	}
	return ClassProtected
}

// Action is the gate's verdict.
type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is the outcome for one request.
type Decision struct {
	Class    RouteClass
	Action   Action
	Location string
}

// Decide is a pure function of the path and the session claim (nil when
// the caller has no valid session).
func Decide(path string, claims *session.Claims) Decision {
	class := Classify(path)
	d := Decision{Class: class, Action: Allow}

	switch class {
	case ClassAuthPage:
		if claims != nil {
			d.Action, d.Location = Redirect, DashboardPath
		}
	case ClassAdmin:
		// Checked before the login redirect: anyone without the admin
		// role is sent home, signed in or not.
		if !claims.IsAdmin() {
			d.Action, d.Location = Redirect, HomePath
		}
	case ClassProtected:
		if claims == nil {
			d.Action, d.Location = Redirect, LoginPath
		}
	}
	return d
}
