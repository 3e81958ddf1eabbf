// Package csrf protects the page forms with a double-submit token: a signed
// JWT is handed out in a cookie and must be echoed back in a hidden form
// field on every state-changing request.
package csrf

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/hoaxify/internal/logger"
)

const (
	DefaultCookieName = "hoaxify_csrf"
	FieldName         = "csrf_token"
	tokenTTL          = 12 * time.Hour
)

var ErrInvalidToken = errors.New("invalid csrf token")

// Claims identify a single token; the ID makes every token unique.
type Claims struct {
	jwt.RegisteredClaims
}

type ContextKey string

// TokenKey is the context key under which the request's token is stored.
const TokenKey ContextKey = "csrfToken"

type Protector struct {
	cookieName string
	signingKey []byte
}

type InitOption func(*Protector)

// WithCookieName overrides DefaultCookieName.
func WithCookieName(name string) InitOption {
	return func(p *Protector) {
		p.cookieName = name
	}
}

func New(signingKey []byte, opts ...InitOption) *Protector {
	p := &Protector{
		cookieName: DefaultCookieName,
		signingKey: signingKey,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Token returns the token stored in ctx by Protect.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}

// Protect issues a token cookie when the request carries no valid one and
// rejects unsafe requests whose form field does not match the cookie.
func (p *Protector) Protect(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		cookieToken := ""
		if cookie, err := request.Cookie(p.cookieName); err == nil {
			cookieToken = cookie.Value
		}

		if !isSafeMethod(request.Method) {
			if err := p.verify(cookieToken, request.PostFormValue(FieldName)); err != nil {
				logger.Log.Debugln("Error calling the `p.verify()`: ", zap.Error(err))
				http.Error(response, http.StatusText(http.StatusForbidden), http.StatusForbidden)

				return
			}
		}

		if p.parse(cookieToken) != nil {
			token, err := p.buildJWTString()
			if err != nil {
				logger.Log.Debugln("Error calling the `p.buildJWTString()`: ", zap.Error(err))
				response.WriteHeader(http.StatusInternalServerError)

				return
			}
			cookieToken = token
			http.SetCookie(
				response,
				&http.Cookie{
					Name:     p.cookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteStrictMode,
				},
			)
		}

		ctx := context.WithValue(request.Context(), TokenKey, cookieToken)
		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func (p *Protector) verify(cookieToken, formToken string) error {
	if cookieToken == "" || formToken == "" {
		return fmt.Errorf("in internal/csrf/csrf.go/verify(): missing token: %w", ErrInvalidToken)
	}
	if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) != 1 {
		return fmt.Errorf("in internal/csrf/csrf.go/verify(): cookie and form tokens differ: %w", ErrInvalidToken)
	}

	return p.parse(cookieToken)
}

func (p *Protector) parse(tokenString string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return p.signingKey, nil
		},
	)
	if err != nil {
		return fmt.Errorf("in internal/csrf/csrf.go/parse(): error while `parser.ParseWithClaims()` calling: %w", errors.Join(ErrInvalidToken, err))
	}
	if !token.Valid || claims.ID == "" {
		return ErrInvalidToken
	}

	return nil
}

func (p *Protector) buildJWTString() (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(p.signingKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
