package query

import (
	"context"
	"strings"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET EVENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetEventQuery fetches a single event by ID.
type GetEventQuery struct {
	EventID string
}

// Validate validates the query.
func (q GetEventQuery) Validate() error {
	if strings.TrimSpace(q.EventID) == "" {
		return shared.ValidationErrors{{Field: "event_id", Message: "event ID is required"}}
	}
	return nil
}

// GetEventHandler handles the GetEventQuery.
type GetEventHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewGetEventHandler creates a new GetEventHandler.
func NewGetEventHandler(runner scope.Runner, log *logger.Logger) *GetEventHandler {
	return &GetEventHandler{runner: runner, log: log}
}

// Handle executes the get event query.
func (h *GetEventHandler) Handle(ctx context.Context, q GetEventQuery) (*community.Event, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return scope.Run(ctx, h.runner, h.log, scope.OpGetEvent, func(ctx context.Context, s scope.Store) (*community.Event, error) {
		return s.Events().GetByID(ctx, q.EventID)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// GET ARTICLE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetArticleQuery fetches a single article by ID.
type GetArticleQuery struct {
	ArticleID string
}

// Validate validates the query.
func (q GetArticleQuery) Validate() error {
	if strings.TrimSpace(q.ArticleID) == "" {
		return shared.ValidationErrors{{Field: "article_id", Message: "article ID is required"}}
	}
	return nil
}

// GetArticleHandler handles the GetArticleQuery.
type GetArticleHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewGetArticleHandler creates a new GetArticleHandler.
func NewGetArticleHandler(runner scope.Runner, log *logger.Logger) *GetArticleHandler {
	return &GetArticleHandler{runner: runner, log: log}
}

// Handle executes the get article query.
func (h *GetArticleHandler) Handle(ctx context.Context, q GetArticleQuery) (*community.Article, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return scope.Run(ctx, h.runner, h.log, scope.OpGetArticle, func(ctx context.Context, s scope.Store) (*community.Article, error) {
		return s.Articles().GetByID(ctx, q.ArticleID)
	})
}
