// Package router serves the Hoaxify pages over HTTP. Navigation is a GET of
// the page path; forms POST to the same path and redirect back to it.
package router

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/hoaxify/internal/auth"
	"github.com/patric-chuzhbe/hoaxify/internal/csrf"
	"github.com/patric-chuzhbe/hoaxify/internal/i18n"
	"github.com/patric-chuzhbe/hoaxify/internal/logger"
	"github.com/patric-chuzhbe/hoaxify/internal/models"
	"github.com/patric-chuzhbe/hoaxify/internal/pages"
	"github.com/patric-chuzhbe/hoaxify/internal/view"
)

type backend interface {
	SignUp(ctx context.Context, body models.SignUpRequest) error
	Activate(ctx context.Context, token string) error
	Login(ctx context.Context, body models.LoginRequest) (*models.LoginResponse, error)
	LoadUsers(ctx context.Context, page, size int) (*models.UserPage, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type sessionService interface {
	State() auth.Session
	LoginSuccess(ctx context.Context, data auth.LoginData) error
	Logout(ctx context.Context) error
}

type localeSwitcher interface {
	Locale() string
	SetLocale(locale string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type renderer interface {
	Render(w io.Writer, name string, data view.Data) error
}

type csrfProtector interface {
	Protect(h http.Handler) http.Handler
}

type clientGuard interface {
	TrustedOnly(h http.Handler) http.Handler
}

// Router holds the page handlers. The sign up and login forms live as long
// as the process: the client has a single user.
type Router struct {
	table    *Table
	db       pinger
	backend  backend
	session  sessionService
	locale   localeSwitcher
	renderer renderer
	signUp   *pages.SignUp
	login    *pages.Login
}

// NewRouter builds the handlers without wiring them to a mux.
func NewRouter(
	db pinger,
	backend backend,
	session sessionService,
	locale localeSwitcher,
	renderer renderer,
) *Router {
	return &Router{
		table:    NewTable(),
		db:       db,
		backend:  backend,
		session:  session,
		locale:   locale,
		renderer: renderer,
		signUp:   pages.NewSignUp(backend),
		login:    pages.NewLogin(backend, session),
	}
}

// New returns the complete page server.
func New(
	db pinger,
	backend backend,
	session sessionService,
	locale localeSwitcher,
	renderer renderer,
	guard clientGuard,
	protector csrfProtector,
) *chi.Mux {
	myRouter := NewRouter(db, backend, session, locale, renderer)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		logger.WithLoggingHTTPMiddleware,
		middleware.Recoverer,
		guard.TrustedOnly,
		middleware.Compress(5, "text/html"),
	)
	router.Get(`/ping`, myRouter.GetPing)
	router.Group(func(pagesRouter chi.Router) {
		pagesRouter.Use(protector.Protect)
		myRouter.Mount(pagesRouter)
	})

	return router
}

// Mount registers the page routes on router.
func (r *Router) Mount(router chi.Router) {
	router.Get(PatternHome, r.GetHome)
	router.Get(PatternSignUp, r.GetSignUp)
	router.Post(PatternSignUp, r.PostSignUp)
	router.Get(PatternLogin, r.GetLogin)
	router.Post(PatternLogin, r.PostLogin)
	router.Get(PatternUser, r.GetUser)
	router.Get(PatternActivation, r.GetActivation)
	router.Post(`/logout`, r.PostLogout)
	router.Post(`/language/{lang}`, r.PostLanguage)
	router.NotFound(r.NotFound)
}

func (r *Router) render(response http.ResponseWriter, request *http.Request, status int, name string, content any) {
	data := view.NewData(
		r.session.State(),
		r.locale.Locale(),
		csrf.FieldName,
		csrf.Token(request.Context()),
		content,
	)

	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, name, data); err != nil {
		logger.Log.Debugln("Error calling the `r.renderer.Render()`: ", zap.Error(err))
		http.Error(response, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(status)
	if _, err := buf.WriteTo(response); err != nil {
		logger.Log.Debugln("Error calling the `buf.WriteTo()`: ", zap.Error(err))
	}
}

func (r *Router) resolve(response http.ResponseWriter, request *http.Request) (Match, bool) {
	match, err := r.table.Resolve(request.URL.Path)
	if err != nil {
		logger.Log.Debugln("Error calling the `r.table.Resolve()`: ", zap.Error(err))
		messageKey := i18n.KeyPageNotFound
		if match.Page == PageUser && errors.Is(err, ErrInvalidRouteParams) {
			messageKey = i18n.KeyInvalidUserID
		}
		r.render(response, request, http.StatusNotFound, view.PageNotFound, messageKey)

		return Match{}, false
	}

	return match, true
}

func redirect(response http.ResponseWriter, request *http.Request, to string) {
	http.Redirect(response, request, to, http.StatusSeeOther)
}

// redirectBack returns to the page the form was posted from.
func redirectBack(response http.ResponseWriter, request *http.Request) {
	target := "/"
	if referer, err := url.Parse(request.Referer()); err == nil && referer.Path != "" {
		target = referer.Path
		if referer.RawQuery != "" {
			target += "?" + referer.RawQuery
		}
	}
	redirect(response, request, target)
}

func (r *Router) GetHome(response http.ResponseWriter, request *http.Request) {
	page, err := strconv.Atoi(request.URL.Query().Get("page"))
	if err != nil {
		page = 0
	}

	home := pages.NewHome(r.backend)
	home.Load(request.Context(), page)

	r.render(response, request, http.StatusOK, view.PageHome, home.View())
}

// GetSignUp shows the sign up form. The confirmation is shown once, the
// next visit starts with an empty form.
func (r *Router) GetSignUp(response http.ResponseWriter, request *http.Request) {
	signUpView := r.signUp.View()
	r.render(response, request, http.StatusOK, view.PageSignUp, signUpView)

	if signUpView.Completed {
		r.signUp.Reset()
	}
}

func (r *Router) PostSignUp(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	for _, field := range []string{pages.FieldUsername, pages.FieldEmail, pages.FieldPassword, pages.FieldPasswordRepeat} {
		r.signUp.Update(field, request.PostForm.Get(field))
	}
	r.signUp.Submit(request.Context())

	redirect(response, request, PatternSignUp)
}

func (r *Router) GetLogin(response http.ResponseWriter, request *http.Request) {
	r.render(response, request, http.StatusOK, view.PageLogin, r.login.View())
}

// PostLogin logs in and sends the user home, or back to the form with the
// failure message.
func (r *Router) PostLogin(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	r.login.Update(pages.FieldEmail, request.PostForm.Get(pages.FieldEmail))
	r.login.Update(pages.FieldPassword, request.PostForm.Get(pages.FieldPassword))
	r.login.Submit(request.Context())

	if r.login.View().Status == pages.StatusSuccess {
		r.login.Reset()
		redirect(response, request, PatternHome)

		return
	}

	redirect(response, request, PatternLogin)
}

func (r *Router) GetUser(response http.ResponseWriter, request *http.Request) {
	match, ok := r.resolve(response, request)
	if !ok {
		return
	}

	userPage := pages.NewUser(r.backend)
	userPage.Load(request.Context(), match.User)

	r.render(response, request, http.StatusOK, view.PageUser, userPage.View())
}

func (r *Router) GetActivation(response http.ResponseWriter, request *http.Request) {
	match, ok := r.resolve(response, request)
	if !ok {
		return
	}

	activation := pages.NewActivation(r.backend)
	activation.Load(request.Context(), match.Activation)

	r.render(response, request, http.StatusOK, view.PageActivation, activation.View())
}

func (r *Router) PostLogout(response http.ResponseWriter, request *http.Request) {
	if err := r.session.Logout(request.Context()); err != nil {
		logger.Log.Debugln("Error calling the `r.session.Logout()`: ", zap.Error(err))
		http.Error(response, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	redirect(response, request, PatternHome)
}

func (r *Router) PostLanguage(response http.ResponseWriter, request *http.Request) {
	if err := r.locale.SetLocale(chi.URLParam(request, "lang")); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	redirectBack(response, request)
}

func (r *Router) GetPing(response http.ResponseWriter, request *http.Request) {
	if err := r.db.Ping(request.Context()); err != nil {
		logger.Log.Debugln("Error calling the `r.db.Ping()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}

	response.WriteHeader(http.StatusOK)
}

func (r *Router) NotFound(response http.ResponseWriter, request *http.Request) {
	r.render(response, request, http.StatusNotFound, view.PageNotFound, i18n.KeyPageNotFound)
}
