package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrNoRoute is returned by Resolve for paths without a view.
var ErrNoRoute = errors.New("no route")

// View renders one screen of the front-end.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

type Route struct {
	Path string
	Name string
	View View
}

type Router struct {
	routes map[string]Route
}

// NewRouter maps "/" to the user list and "/about" to the about page.
func NewRouter(users *UsersView) *Router {
	return NewRouterWithRoutes(
		Route{Path: "/", Name: "home", View: users},
		Route{Path: "/about", Name: "about", View: AboutView{}},
	)
}

func NewRouterWithRoutes(routes ...Route) *Router {
	r := &Router{routes: make(map[string]Route, len(routes))}
	for _, route := range routes {
		r.routes[route.Path] = route
	}
	return r
}

// Resolve finds the route for path. A trailing slash is ignored.
func (r *Router) Resolve(path string) (Route, error) {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	route, ok := r.routes[path]
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrNoRoute, path)
	}
	return route, nil
}

// Navigate resolves path and renders its view to w.
func (r *Router) Navigate(ctx context.Context, path string, w io.Writer) error {
	route, err := r.Resolve(path)
	if err != nil {
		return err
	}
	return route.View.Render(ctx, w)
}

// Routes lists the registered routes ordered by path.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}
