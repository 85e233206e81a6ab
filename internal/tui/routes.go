package tui

import "strings"

// route is a screen of the client.
type route int

const (
	routeLogin route = iota
	routeRegister
	routeActive
	routeCompleted
)

// parseRoute maps a path to a route. Unknown paths fall back to the active notes.
func parseRoute(path string) route {
	switch strings.TrimRight(strings.ToLower(strings.TrimSpace(path)), "/") {
	case "/login", "login":
		return routeLogin
	case "/register", "register":
		return routeRegister
	case "/completed", "completed":
		return routeCompleted
	default:
		return routeActive
	}
}

func (r route) String() string {
	switch r {
	case routeLogin:
		return "/login"
	case routeRegister:
		return "/register"
	case routeCompleted:
		return "/completed"
	default:
		return "/"
	}
}

func (r route) protected() bool {
	return r == routeActive || r == routeCompleted
}

// resolve applies the auth guard: protected routes need a session and the
// auth screens redirect home once signed in.
func resolve(r route, authenticated bool) route {
	switch {
	case r.protected() && !authenticated:
		return routeLogin
	case !r.protected() && authenticated:
		return routeActive
	default:
		return r
	}
}
