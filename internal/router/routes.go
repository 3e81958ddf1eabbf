package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/patric-chuzhbe/hoaxify/internal/pages"
)

type Page int

const (
	PageUnknown Page = iota
	PageHome
	PageSignUp
	PageLogin
	PageUser
	PageActivation
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageSignUp:
		return "signup"
	case PageLogin:
		return "login"
	case PageUser:
		return "user"
	case PageActivation:
		return "activation"
	}
	return "unknown"
}

var (
	ErrRouteNotFound      = errors.New("route not found")
	ErrInvalidRouteParams = errors.New("invalid route params")
)

// Route patterns, in chi syntax.
const (
	PatternHome       = "/"
	PatternSignUp     = "/signup"
	PatternLogin      = "/login"
	PatternUser       = "/user/{id}"
	PatternActivation = "/activate/{token}"
)

// Match is a resolved route. Only the params of Page are set.
type Match struct {
	Page       Page
	Pattern    string
	User       pages.UserParams
	Activation pages.ActivationParams
}

// Table maps paths to pages.
type Table struct {
	mux   *chi.Mux
	pages map[string]Page
}

func NewTable() *Table {
	table := &Table{
		mux: chi.NewRouter(),
		pages: map[string]Page{
			PatternHome:       PageHome,
			PatternSignUp:     PageSignUp,
			PatternLogin:      PageLogin,
			PatternUser:       PageUser,
			PatternActivation: PageActivation,
		},
	}
	noop := func(http.ResponseWriter, *http.Request) {}
	for pattern := range table.pages {
		table.mux.Get(pattern, noop)
	}

	return table
}

// Resolve finds the page for path and decodes its typed params. When the
// params are invalid the returned Match still names the page.
func (table *Table) Resolve(path string) (Match, error) {
	rctx := chi.NewRouteContext()
	if !table.mux.Match(rctx, http.MethodGet, path) {
		return Match{}, fmt.Errorf("in internal/router/routes.go/Resolve(): %q: %w", path, ErrRouteNotFound)
	}

	pattern := rctx.RoutePattern()
	match := Match{
		Page:    table.pages[pattern],
		Pattern: pattern,
	}

	switch match.Page {
	case PageUser:
		id, err := strconv.ParseInt(rctx.URLParam("id"), 10, 64)
		if err != nil || id <= 0 {
			return Match{Page: match.Page, Pattern: pattern}, fmt.Errorf("in internal/router/routes.go/Resolve(): user id %q: %w", rctx.URLParam("id"), ErrInvalidRouteParams)
		}
		match.User = pages.UserParams{ID: id}

	case PageActivation:
		token := strings.TrimSpace(rctx.URLParam("token"))
		if token == "" {
			return Match{Page: match.Page, Pattern: pattern}, fmt.Errorf("in internal/router/routes.go/Resolve(): empty activation token: %w", ErrInvalidRouteParams)
		}
		match.Activation = pages.ActivationParams{Token: token}
	}

	return match, nil
}
