package pages

import (
	"context"
	"sync"

	"github.com/patric-chuzhbe/hoaxify/internal/models"
)

type usersClient interface {
	LoadUsers(ctx context.Context, page, size int) (*models.UserPage, error)
}

// Home lists the users one page at a time.
type Home struct {
	mu      sync.Mutex
	client  usersClient
	size    int
	status  Status
	page    models.UserPage
	failure Failure
}

type HomeView struct {
	Status      Status
	Users       []models.User
	Page        int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
	Failure     Failure
	Loading     bool
}

func NewHome(client usersClient) *Home {
	return &Home{
		client: client,
		size:   models.DefaultUserPageSize,
	}
}

// Load fetches page number page (zero based); negative pages load the first one.
func (p *Home) Load(ctx context.Context, page int) {
	if page < 0 {
		page = 0
	}

	p.mu.Lock()
	if p.status == StatusSubmitting {
		p.mu.Unlock()
		return
	}
	p.status = StatusSubmitting
	p.failure = Failure{}
	p.mu.Unlock()

	result, err := p.client.LoadUsers(ctx, page, p.size)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.status = StatusFailure
		p.failure = failureFrom(err)
		return
	}
	p.status = StatusSuccess
	p.page = *result
}

func (p *Home) View() HomeView {
	p.mu.Lock()
	defer p.mu.Unlock()

	return HomeView{
		Status:      p.status,
		Users:       append([]models.User(nil), p.page.Content...),
		Page:        p.page.Page,
		TotalPages:  p.page.TotalPages,
		HasNext:     p.page.Page+1 < p.page.TotalPages,
		HasPrevious: p.page.Page > 0,
		Failure:     p.failure,
		Loading:     p.status == StatusSubmitting,
	}
}
