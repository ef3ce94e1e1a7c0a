package query

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET HOME QUERY
// The landing view: the three most recent campus events. Home is also
// the designated fallback operation - every other operation's scope
// failure redirects here, so a failure of this query itself must be
// terminal rather than another redirect.
// ══════════════════════════════════════════════════════════════════════════════

// HomeEventCount is how many recent events the landing view shows.
const HomeEventCount = 3

// GetHomeQuery has no parameters; home is public.
type GetHomeQuery struct{}

// HomeView is the landing read model.
type HomeView struct {
	RecentEvents []*community.Event `json:"recent_events"`
}

// GetHomeHandler handles the GetHomeQuery.
type GetHomeHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewGetHomeHandler creates a new GetHomeHandler.
func NewGetHomeHandler(runner scope.Runner, log *logger.Logger) *GetHomeHandler {
	return &GetHomeHandler{runner: runner, log: log}
}

// Handle executes the home query.
func (h *GetHomeHandler) Handle(ctx context.Context, _ GetHomeQuery) (*HomeView, error) {
	return scope.Run(ctx, h.runner, h.log, scope.OpHome, func(ctx context.Context, s scope.Store) (*HomeView, error) {
		events, err := s.Events().List(ctx, shared.Pagination{Limit: HomeEventCount})
		if err != nil {
			return nil, err
		}
		if events == nil {
			events = []*community.Event{}
		}
		return &HomeView{RecentEvents: events}, nil
	})
}
