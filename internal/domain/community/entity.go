// Package community contains the record-store entities for the hub's
// community surfaces: campus events, articles, and classified listings.
package community

import (
	"strings"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVENTS
// ══════════════════════════════════════════════════════════════════════════════

// Event is a campus event announcement. Admin-published, append-only.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	PublishedBy string
	CreatedAt   time.Time
}

// NewEvent creates an event announcement.
func NewEvent(title, description, location string, startsAt time.Time, publishedBy string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.WrapError("community", "NewEvent", shared.ErrEmptyValue, "event title is required", nil)
	}
	if publishedBy == "" {
		return nil, shared.WrapError("community", "NewEvent", shared.ErrEmptyValue, "publisher is required", nil)
	}
	if startsAt.IsZero() {
		return nil, shared.WrapError("community", "NewEvent", shared.ErrInvalidInput, "event start time is required", nil)
	}

	return &Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Location:    strings.TrimSpace(location),
		StartsAt:    startsAt,
		PublishedBy: publishedBy,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ARTICLES
// ══════════════════════════════════════════════════════════════════════════════

// Article is a published piece of hub content. Admin-published.
type Article struct {
	ID          string
	Title       string
	Body        string
	AuthorID    string
	PublishedAt time.Time
}

// NewArticle creates an article.
func NewArticle(title, body, authorID string) (*Article, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return nil, shared.WrapError("community", "NewArticle", shared.ErrEmptyValue, "article title is required", nil)
	}
	if body == "" {
		return nil, shared.WrapError("community", "NewArticle", shared.ErrEmptyValue, "article body is required", nil)
	}
	if authorID == "" {
		return nil, shared.WrapError("community", "NewArticle", shared.ErrEmptyValue, "author is required", nil)
	}

	return &Article{
		ID:          uuid.NewString(),
		Title:       title,
		Body:        body,
		AuthorID:    authorID,
		PublishedAt: time.Now().UTC(),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LISTINGS
// ══════════════════════════════════════════════════════════════════════════════

// ListingKind partitions the unified classifieds table.
type ListingKind string

const (
	KindLostFound ListingKind = "lost_found"
	KindHousing   ListingKind = "housing"
	KindDonation  ListingKind = "donation"
)

// IsValid checks that the kind is one of the known values.
func (k ListingKind) IsValid() bool {
	switch k {
	case KindLostFound, KindHousing, KindDonation:
		return true
	}
	return false
}

// ListingStatus is the active → resolved lifecycle.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingResolved ListingStatus = "resolved"
)

// Listing is a member-posted classified record: lost and found, housing,
// or donation. Resolving is gated to the owner or an admin; unlike task
// transitions, an unauthorized resolve is an explicit denial.
type Listing struct {
	ID          string
	Kind        ListingKind
	UserID      string
	Title       string
	Description string
	Contact     string
	Status      ListingStatus
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// NewListing creates an active listing owned by userID.
func NewListing(kind ListingKind, userID, title, description, contact string) (*Listing, error) {
	if !kind.IsValid() {
		return nil, shared.WrapError("community", "NewListing", shared.ErrInvalidInput, "unknown listing kind", nil)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.WrapError("community", "NewListing", shared.ErrEmptyValue, "listing title is required", nil)
	}
	if userID == "" {
		return nil, shared.WrapError("community", "NewListing", shared.ErrEmptyValue, "listing owner is required", nil)
	}

	return &Listing{
		ID:          uuid.NewString(),
		Kind:        kind,
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Contact:     strings.TrimSpace(contact),
		Status:      ListingActive,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// CanBeResolvedBy reports whether the actor may resolve this listing.
func (l *Listing) CanBeResolvedBy(actorID string, actorIsAdmin bool) bool {
	return actorIsAdmin || l.UserID == actorID
}

// ErrListingDenied is returned when a non-owner non-admin tries to
// resolve a listing.
var ErrListingDenied = shared.NewDomainError("community", "ResolveListing", shared.ErrForbidden, "only the owner or an admin can resolve a listing")
