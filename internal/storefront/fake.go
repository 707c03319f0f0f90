package storefront

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ETAnderson/storesync/internal/domain"
)

// Call records one invocation against the Fake.
type Call struct {
	Op        string // "create" | "update"
	SiteID    string
	ProductID string
	Payload   ProductPayload
}

// Fake is an in-memory Client for tests. Failures are scripted per op.
type Fake struct {
	mu sync.Mutex

	Calls []Call

	// FailCreate / FailUpdate, when set, are returned instead of succeeding.
	FailCreate error
	FailUpdate error

	// NextID overrides the generated id for the next create.
	NextID string
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) CreateProduct(ctx context.Context, siteID string, payload ProductPayload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{Op: "create", SiteID: siteID, Payload: payload})

	if f.FailCreate != nil {
		return "", f.FailCreate
	}

	id := f.NextID
	if id == "" {
		id = "prod_" + uuid.NewString()
	}
	f.NextID = ""
	return id, nil
}

func (f *Fake) UpdateProduct(ctx context.Context, siteID string, productID string, payload ProductPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{Op: "update", SiteID: siteID, ProductID: productID, Payload: payload})

	if f.FailUpdate != nil {
		return f.FailUpdate
	}
	return nil
}

// CallsFor returns the recorded calls with the given op.
func (f *Fake) CallsFor(op string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Call, 0, len(f.Calls))
	for _, c := range f.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// NetworkError builds a scripted transport failure for tests.
func NetworkError(op string, message string) error {
	return &Error{Op: op, Kind: domain.ErrorKindNetwork, Message: message}
}
