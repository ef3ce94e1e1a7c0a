package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// EventRepository implements community.EventRepository for PostgreSQL.
type EventRepository struct {
	q Querier
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(q Querier) *EventRepository {
	return &EventRepository{q: q}
}

// Create inserts an event announcement.
func (r *EventRepository) Create(ctx context.Context, e *community.Event) error {
	query := `
		INSERT INTO events (id, title, description, location, starts_at, published_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.Exec(ctx, query, e.ID, e.Title, e.Description, e.Location, e.StartsAt, e.PublishedBy, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetByID returns one event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*community.Event, error) {
	query := `
		SELECT id, title, description, location, starts_at, published_by, created_at
		FROM events
		WHERE id = $1
	`

	row := r.q.QueryRow(ctx, query, id)
	return scanEvent(row)
}

// List returns events newest first.
func (r *EventRepository) List(ctx context.Context, p shared.Pagination) ([]*community.Event, error) {
	query := `
		SELECT id, title, description, location, starts_at, published_by, created_at
		FROM events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.q.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*community.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func scanEvent(row pgx.Row) (*community.Event, error) {
	var e community.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.PublishedBy, &e.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("community", "GetEvent", shared.ErrNotFound, "event not found")
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return &e, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ARTICLE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ArticleRepository implements community.ArticleRepository for PostgreSQL.
type ArticleRepository struct {
	q Querier
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(q Querier) *ArticleRepository {
	return &ArticleRepository{q: q}
}

// Create inserts an article.
func (r *ArticleRepository) Create(ctx context.Context, a *community.Article) error {
	query := `
		INSERT INTO articles (id, title, body, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.Exec(ctx, query, a.ID, a.Title, a.Body, a.AuthorID, a.PublishedAt)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetByID returns one article.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*community.Article, error) {
	query := `
		SELECT id, title, body, author_id, published_at
		FROM articles
		WHERE id = $1
	`

	var a community.Article
	err := r.q.QueryRow(ctx, query, id).Scan(&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.PublishedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("community", "GetArticle", shared.ErrNotFound, "article not found")
		}
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}

	return &a, nil
}

// List returns articles newest first.
func (r *ArticleRepository) List(ctx context.Context, p shared.Pagination) ([]*community.Article, error) {
	query := `
		SELECT id, title, body, author_id, published_at
		FROM articles
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.q.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []*community.Article
	for rows.Next() {
		var a community.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, &a)
	}

	return articles, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// LISTING REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ListingRepository implements community.ListingRepository for PostgreSQL.
type ListingRepository struct {
	q Querier
}

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(q Querier) *ListingRepository {
	return &ListingRepository{q: q}
}

// Create inserts an active listing.
func (r *ListingRepository) Create(ctx context.Context, l *community.Listing) error {
	query := `
		INSERT INTO listings (id, kind, user_id, title, description, contact, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.Exec(ctx, query,
		l.ID,
		string(l.Kind),
		l.UserID,
		l.Title,
		l.Description,
		l.Contact,
		string(l.Status),
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// GetByID returns one listing regardless of status.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*community.Listing, error) {
	query := `
		SELECT id, kind, user_id, title, description, contact, status, created_at, resolved_at
		FROM listings
		WHERE id = $1
	`

	row := r.q.QueryRow(ctx, query, id)
	return scanListing(row)
}

// ListActiveByKind returns active listings of one kind, newest first.
func (r *ListingRepository) ListActiveByKind(ctx context.Context, kind community.ListingKind, p shared.Pagination) ([]*community.Listing, error) {
	query := `
		SELECT id, kind, user_id, title, description, contact, status, created_at, resolved_at
		FROM listings
		WHERE kind = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, string(kind), p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []*community.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// Resolve marks a listing resolved.
func (r *ListingRepository) Resolve(ctx context.Context, id string) error {
	query := `
		UPDATE listings
		SET status = 'resolved', resolved_at = $2
		WHERE id = $1 AND status = 'active'
	`

	tag, err := r.q.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to resolve listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NewDomainError("community", "ResolveListing", shared.ErrNotFound, "active listing not found")
	}

	return nil
}

func scanListing(row pgx.Row) (*community.Listing, error) {
	var l community.Listing
	var kind, status string

	err := row.Scan(
		&l.ID,
		&kind,
		&l.UserID,
		&l.Title,
		&l.Description,
		&l.Contact,
		&status,
		&l.CreatedAt,
		&l.ResolvedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("community", "GetListing", shared.ErrNotFound, "listing not found")
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	l.Kind = community.ListingKind(kind)
	l.Status = community.ListingStatus(status)
	return &l, nil
}
