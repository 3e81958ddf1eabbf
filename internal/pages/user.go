package pages

import (
	"context"
	"sync"

	"github.com/patric-chuzhbe/hoaxify/internal/models"
)

// UserParams are the route parameters of /user/:id.
type UserParams struct {
	ID int64
}

type userClient interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// User shows one user's profile. A User is created per visit and loads on open.
type User struct {
	mu      sync.Mutex
	client  userClient
	status  Status
	user    *models.User
	failure Failure
}

type UserView struct {
	Status  Status
	User    *models.User
	Failure Failure
	Loading bool
}

func NewUser(client userClient) *User {
	return &User{client: client}
}

// Load fetches the user named by params.
func (p *User) Load(ctx context.Context, params UserParams) {
	p.mu.Lock()
	if p.status == StatusSubmitting {
		p.mu.Unlock()
		return
	}
	p.status = StatusSubmitting
	p.user = nil
	p.failure = Failure{}
	p.mu.Unlock()

	user, err := p.client.GetUserByID(ctx, params.ID)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.status = StatusFailure
		p.failure = failureFrom(err)
		return
	}
	p.status = StatusSuccess
	p.user = user
}

func (p *User) View() UserView {
	p.mu.Lock()
	defer p.mu.Unlock()

	return UserView{
		Status:  p.status,
		User:    p.user,
		Failure: p.failure,
		Loading: p.status == StatusSubmitting,
	}
}
