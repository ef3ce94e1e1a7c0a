package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORAGE
// ══════════════════════════════════════════════════════════════════════════════

// Storage is the Postgres-backed scope.Runner. Each RunInScope call opens
// one transaction on the pool and hands the callback a Store whose
// repositories all execute against that transaction.
type Storage struct {
	conn *Connection
}

// NewStorage creates a Storage on top of an established connection pool.
func NewStorage(conn *Connection) *Storage {
	return &Storage{conn: conn}
}

// Conn exposes the underlying connection for health checks and shutdown.
func (s *Storage) Conn() *Connection {
	return s.conn
}

// readOnlyOps never write. Their transactions open in read-only access
// mode so a stray write in a query handler fails at the database.
var readOnlyOps = map[string]bool{
	scope.OpHome:              true,
	scope.OpGetProfile:        true,
	scope.OpGetDashboardStats: true,
	scope.OpGetTaskBoard:      true,
	scope.OpGetAnalytics:      true,
	scope.OpGetLeaderboard:    true,
	scope.OpListEvents:        true,
	scope.OpGetEvent:          true,
	scope.OpListArticles:      true,
	scope.OpGetArticle:        true,
	scope.OpListListings:      true,
}

// RunInScope implements scope.Runner. The transaction commits when fn
// returns nil and rolls back otherwise; panics roll back and re-raise.
func (s *Storage) RunInScope(ctx context.Context, op string, fn func(scope.Store) error) error {
	opts := DefaultTxOptions()
	if readOnlyOps[op] {
		opts = ReadOnlyTxOptions()
	}

	return s.conn.WithTx(ctx, opts, func(tx pgx.Tx) error {
		return fn(newTxStore(tx))
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// TRANSACTION-BOUND STORE
// ══════════════════════════════════════════════════════════════════════════════

// txStore implements scope.Store over a single open transaction.
type txStore struct {
	users    *UserRepository
	tasks    *TaskRepository
	sessions *SessionRepository
	events   *EventRepository
	articles *ArticleRepository
	listings *ListingRepository
}

func newTxStore(q Querier) *txStore {
	return &txStore{
		users:    NewUserRepository(q),
		tasks:    NewTaskRepository(q),
		sessions: NewSessionRepository(q),
		events:   NewEventRepository(q),
		articles: NewArticleRepository(q),
		listings: NewListingRepository(q),
	}
}

func (s *txStore) Users() user.Repository                { return s.users }
func (s *txStore) Tasks() focus.TaskRepository           { return s.tasks }
func (s *txStore) Sessions() focus.SessionRepository     { return s.sessions }
func (s *txStore) Events() community.EventRepository     { return s.events }
func (s *txStore) Articles() community.ArticleRepository { return s.articles }
func (s *txStore) Listings() community.ListingRepository { return s.listings }
