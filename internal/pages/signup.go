package pages

import (
	"context"
	"errors"
	"sync"

	"github.com/patric-chuzhbe/hoaxify/internal/api"
	"github.com/patric-chuzhbe/hoaxify/internal/models"
)

const (
	FieldUsername       = "username"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldPasswordRepeat = "passwordRepeat"
)

type signUpClient interface {
	SignUp(ctx context.Context, body models.SignUpRequest) error
}

// signUpGate holds the client-side rules for enabling the sign up button.
// Username and e-mail are validated by the server.
type signUpGate struct {
	Password       string `validate:"required"`
	PasswordRepeat string `validate:"required,eqfield=Password"`
}

type SignUp struct {
	mu      sync.Mutex
	client  signUpClient
	form    Form
	status  Status
	failure Failure
}

type SignUpView struct {
	Values           map[string]string
	Errors           map[string]string
	Status           Status
	Failure          Failure
	ButtonDisabled   bool
	PasswordMismatch bool
	Submitting       bool
	Completed        bool
}

func NewSignUp(client signUpClient) *SignUp {
	return &SignUp{
		client: client,
		form:   newForm(FieldUsername, FieldEmail, FieldPassword, FieldPasswordRepeat),
	}
}

// Update edits one field.
func (p *SignUp) Update(field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.form.Set(field, value)
}

func (p *SignUp) gate() signUpGate {
	return signUpGate{
		Password:       p.form.Value(FieldPassword),
		PasswordRepeat: p.form.Value(FieldPasswordRepeat),
	}
}

func (p *SignUp) canSubmit() bool {
	return p.status != StatusSubmitting && validate.Struct(p.gate()) == nil
}

// Submit sends the form unless the button is disabled. It reports whether a
// request was issued.
func (p *SignUp) Submit(ctx context.Context) bool {
	p.mu.Lock()
	if !p.canSubmit() {
		p.mu.Unlock()
		return false
	}
	p.status = StatusSubmitting
	p.failure = Failure{}
	body := models.SignUpRequest{
		Username: p.form.Value(FieldUsername),
		Email:    p.form.Value(FieldEmail),
		Password: p.form.Value(FieldPassword),
	}
	p.mu.Unlock()

	err := p.client.SignUp(ctx, body)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err == nil {
		p.status = StatusSuccess
		p.form.ClearErrors()
		return true
	}

	p.status = StatusFailure
	var validationErr *api.ValidationError
	if errors.As(err, &validationErr) {
		p.form.SetErrors(validationErr.Fields)
		return true
	}
	p.failure = failureFrom(err)

	return true
}

func (p *SignUp) View() SignUpView {
	p.mu.Lock()
	defer p.mu.Unlock()

	password, repeat := p.form.Value(FieldPassword), p.form.Value(FieldPasswordRepeat)

	return SignUpView{
		Values:           p.form.Values(),
		Errors:           p.form.Errors(),
		Status:           p.status,
		Failure:          p.failure,
		ButtonDisabled:   !p.canSubmit(),
		PasswordMismatch: password != repeat,
		Submitting:       p.status == StatusSubmitting,
		Completed:        p.status == StatusSuccess,
	}
}

// Reset brings the page back to an empty Idle form.
func (p *SignUp) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.form = newForm(FieldUsername, FieldEmail, FieldPassword, FieldPasswordRepeat)
	p.status = StatusIdle
	p.failure = Failure{}
}
