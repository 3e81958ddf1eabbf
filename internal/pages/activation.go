package pages

import (
	"context"
	"sync"
)

// ActivationParams are the route parameters of /activate/:token.
type ActivationParams struct {
	Token string
}

type activationClient interface {
	Activate(ctx context.Context, token string) error
}

// Activation activates an account as soon as the page is opened.
type Activation struct {
	mu      sync.Mutex
	client  activationClient
	status  Status
	failure Failure
}

type ActivationView struct {
	Status    Status
	Failure   Failure
	Loading   bool
	Activated bool
}

func NewActivation(client activationClient) *Activation {
	return &Activation{client: client}
}

func (p *Activation) Load(ctx context.Context, params ActivationParams) {
	p.mu.Lock()
	if p.status == StatusSubmitting {
		p.mu.Unlock()
		return
	}
	p.status = StatusSubmitting
	p.failure = Failure{}
	p.mu.Unlock()

	err := p.client.Activate(ctx, params.Token)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.status = StatusFailure
		p.failure = failureFrom(err)
		return
	}
	p.status = StatusSuccess
}

func (p *Activation) View() ActivationView {
	p.mu.Lock()
	defer p.mu.Unlock()

	return ActivationView{
		Status:    p.status,
		Failure:   p.failure,
		Loading:   p.status == StatusSubmitting,
		Activated: p.status == StatusSuccess,
	}
}
