package grouprepo

import (
	"context"
	"time"
)

// Group is the persisted singleton group record.
type Group struct {
	Name    string
	LogoURL *string

	UpdatedAt time.Time
}

// Repository provides access to the singleton group record. The row is seeded
// out of band (migration/bootstrap); Update replaces it wholesale.
type Repository interface {
	Get(ctx context.Context) (Group, error)
	Update(ctx context.Context, g Group) error
}
