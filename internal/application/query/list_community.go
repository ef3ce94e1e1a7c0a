package query

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// Default and maximum page sizes for community lists.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST EVENTS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListEventsQuery pages through events, newest first.
type ListEventsQuery struct {
	Limit  int
	Offset int
}

// ListEventsHandler handles the ListEventsQuery.
type ListEventsHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewListEventsHandler creates a new ListEventsHandler.
func NewListEventsHandler(runner scope.Runner, log *logger.Logger) *ListEventsHandler {
	return &ListEventsHandler{runner: runner, log: log}
}

// Handle executes the list events query.
func (h *ListEventsHandler) Handle(ctx context.Context, q ListEventsQuery) ([]*community.Event, error) {
	p := shared.Pagination{Limit: q.Limit, Offset: q.Offset}.Normalize(defaultPageSize, maxPageSize)

	return scope.Run(ctx, h.runner, h.log, scope.OpListEvents, func(ctx context.Context, s scope.Store) ([]*community.Event, error) {
		return s.Events().List(ctx, p)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST ARTICLES QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListArticlesQuery pages through articles, newest first.
type ListArticlesQuery struct {
	Limit  int
	Offset int
}

// ListArticlesHandler handles the ListArticlesQuery.
type ListArticlesHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewListArticlesHandler creates a new ListArticlesHandler.
func NewListArticlesHandler(runner scope.Runner, log *logger.Logger) *ListArticlesHandler {
	return &ListArticlesHandler{runner: runner, log: log}
}

// Handle executes the list articles query.
func (h *ListArticlesHandler) Handle(ctx context.Context, q ListArticlesQuery) ([]*community.Article, error) {
	p := shared.Pagination{Limit: q.Limit, Offset: q.Offset}.Normalize(defaultPageSize, maxPageSize)

	return scope.Run(ctx, h.runner, h.log, scope.OpListArticles, func(ctx context.Context, s scope.Store) ([]*community.Article, error) {
		return s.Articles().List(ctx, p)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST LISTINGS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListListingsQuery pages through active listings of one kind.
type ListListingsQuery struct {
	Kind   string
	Limit  int
	Offset int
}

// Validate validates the query.
func (q ListListingsQuery) Validate() error {
	if !community.ListingKind(q.Kind).IsValid() {
		return shared.ValidationErrors{{Field: "kind", Message: "kind must be lost_found, housing or donation"}}
	}
	return nil
}

// ListListingsHandler handles the ListListingsQuery.
type ListListingsHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewListListingsHandler creates a new ListListingsHandler.
func NewListListingsHandler(runner scope.Runner, log *logger.Logger) *ListListingsHandler {
	return &ListListingsHandler{runner: runner, log: log}
}

// Handle executes the list listings query.
func (h *ListListingsHandler) Handle(ctx context.Context, q ListListingsQuery) ([]*community.Listing, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	p := shared.Pagination{Limit: q.Limit, Offset: q.Offset}.Normalize(defaultPageSize, maxPageSize)

	return scope.Run(ctx, h.runner, h.log, scope.OpListListings, func(ctx context.Context, s scope.Store) ([]*community.Listing, error) {
		return s.Listings().ListActiveByKind(ctx, community.ListingKind(q.Kind), p)
	})
}
