package pages

import (
	"context"
	"sync"

	"github.com/patric-chuzhbe/hoaxify/internal/auth"
	"github.com/patric-chuzhbe/hoaxify/internal/models"
)

type loginClient interface {
	Login(ctx context.Context, body models.LoginRequest) (*models.LoginResponse, error)
}

type sessionCommitter interface {
	LoginSuccess(ctx context.Context, data auth.LoginData) error
}

type loginGate struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type Login struct {
	mu      sync.Mutex
	client  loginClient
	session sessionCommitter
	form    Form
	status  Status
	failure Failure
}

type LoginView struct {
	Values         map[string]string
	Status         Status
	Failure        Failure
	ButtonDisabled bool
	Submitting     bool
}

func NewLogin(client loginClient, session sessionCommitter) *Login {
	return &Login{
		client:  client,
		session: session,
		form:    newForm(FieldEmail, FieldPassword),
	}
}

// Update edits one field; any edit hides the previous failure message.
func (p *Login) Update(field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.form.Set(field, value) {
		p.failure = Failure{}
	}
}

func (p *Login) canSubmit() bool {
	gate := loginGate{
		Email:    p.form.Value(FieldEmail),
		Password: p.form.Value(FieldPassword),
	}
	return p.status != StatusSubmitting && validate.Struct(gate) == nil
}

// Submit logs in and commits the session on success. It reports whether a
// request was issued.
func (p *Login) Submit(ctx context.Context) bool {
	p.mu.Lock()
	if !p.canSubmit() {
		p.mu.Unlock()
		return false
	}
	p.status = StatusSubmitting
	p.failure = Failure{}
	body := models.LoginRequest{
		Email:    p.form.Value(FieldEmail),
		Password: p.form.Value(FieldPassword),
	}
	p.mu.Unlock()

	resp, err := p.client.Login(ctx, body)
	if err == nil {
		err = p.session.LoginSuccess(ctx, auth.LoginDataFromResponse(resp))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.status = StatusFailure
		p.failure = failureFrom(err)
		return true
	}
	p.status = StatusSuccess

	return true
}

func (p *Login) View() LoginView {
	p.mu.Lock()
	defer p.mu.Unlock()

	return LoginView{
		Values:         p.form.Values(),
		Status:         p.status,
		Failure:        p.failure,
		ButtonDisabled: !p.canSubmit(),
		Submitting:     p.status == StatusSubmitting,
	}
}

// Reset clears the form, e.g. after the user has been sent home.
func (p *Login) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.form = newForm(FieldEmail, FieldPassword)
	p.status = StatusIdle
	p.failure = Failure{}
}
