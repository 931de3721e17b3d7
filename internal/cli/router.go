package cli

import (
	"context"

	"github.com/mroussel/frais/internal/domain"
)

// navIcon identifies the sidebar icon highlighted for the active route.
type navIcon int

const (
	iconNone   navIcon = iota
	iconWindow         // bill list
	iconMail           // new bill
	iconShield         // admin dashboard
)

// route pairs a hash path with its view factory and access requirement.
// Routes are static; the table is built once at startup.
type route struct {
	path    string
	role    domain.UserRole // "" = public
	icon    navIcon
	factory func(*SharedState) View
}

// Router owns the route table and the process-wide navigation state:
// the current path and the active-icon indicator.
type Router struct {
	state  *SharedState
	routes []route

	currentPath string
	activeIcon  navIcon
}

func newRouter(state *SharedState) *Router {
	return &Router{
		state: state,
		routes: []route{
			{path: RouteLogin, factory: func(s *SharedState) View { return newLoginView(s) }},
			{path: RouteBills, role: domain.RoleEmployee, icon: iconWindow,
				factory: func(s *SharedState) View { return newBillsView(s) }},
			{path: RouteNewBill, role: domain.RoleEmployee, icon: iconMail,
				factory: func(s *SharedState) View { return newNewBillView(s) }},
			{path: RouteDashboard, role: domain.RoleAdministrator, icon: iconShield,
				factory: func(s *SharedState) View { return newDashboardView(s) }},
		},
	}
}

// Resolve maps a hash path to its view, enforcing the auth gate.
// Unknown paths return (nil, false) and leave the navigation state
// untouched. A missing session or a role mismatch redirects to the
// login route instead of the requested one.
func (r *Router) Resolve(path string) (View, bool) {
	rt, ok := r.lookup(path)
	if !ok {
		return nil, false
	}

	if rt.role != "" {
		user, err := r.state.App.Sessions.Current(context.Background())
		if err != nil || user == nil || user.Role != rt.role {
			rt, _ = r.lookup(RouteLogin)
		}
	}

	r.currentPath = rt.path
	r.activeIcon = rt.icon
	return rt.factory(r.state), true
}

func (r *Router) lookup(path string) (route, bool) {
	for _, rt := range r.routes {
		if rt.path == path {
			return rt, true
		}
	}
	return route{}, false
}

// CurrentPath returns the hash path of the active route.
func (r *Router) CurrentPath() string { return r.currentPath }

// ActiveIcon returns the sidebar icon marked for the active route.
func (r *Router) ActiveIcon() navIcon { return r.activeIcon }
