package community

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

// EventRepository persists campus events.
type EventRepository interface {
	// Create inserts an event announcement.
	Create(ctx context.Context, e *Event) error

	// GetByID returns one event.
	GetByID(ctx context.Context, id string) (*Event, error)

	// List returns events newest first.
	List(ctx context.Context, p shared.Pagination) ([]*Event, error)
}

// ArticleRepository persists hub articles.
type ArticleRepository interface {
	// Create inserts an article.
	Create(ctx context.Context, a *Article) error

	// GetByID returns one article.
	GetByID(ctx context.Context, id string) (*Article, error)

	// List returns articles newest first.
	List(ctx context.Context, p shared.Pagination) ([]*Article, error)
}

// ListingRepository persists classified listings.
type ListingRepository interface {
	// Create inserts an active listing.
	Create(ctx context.Context, l *Listing) error

	// GetByID returns one listing regardless of status.
	GetByID(ctx context.Context, id string) (*Listing, error)

	// ListActiveByKind returns active listings of one kind, newest first.
	ListActiveByKind(ctx context.Context, kind ListingKind, p shared.Pagination) ([]*Listing, error)

	// Resolve marks a listing resolved with a server-assigned timestamp.
	// Authorization is checked by the caller before this runs.
	Resolve(ctx context.Context, id string) error
}
