// Package scope implements the per-operation transaction scope. Every
// exposed operation, mutating or read-only, runs its storage work inside
// exactly one scope: one transaction opened on entry, committed when the
// operation succeeds, rolled back when it fails, always released.
package scope

import (
	"context"
	"errors"

	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"

	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// OPERATION NAMES
// ══════════════════════════════════════════════════════════════════════════════

// Operation names identify scopes in logs and drive the failure routing:
// a failed scope redirects to the home operation, except when home itself
// is the one that failed.
const (
	OpHome = "Home"

	OpRegisterUser  = "RegisterUser"
	OpLoginUser     = "LoginUser"
	OpGetProfile    = "GetProfile"
	OpUpdateProfile = "UpdateProfile"

	OpAddTask           = "AddTask"
	OpStartTask         = "StartTask"
	OpCompleteTask      = "CompleteTask"
	OpRecordSession     = "RecordSession"
	OpGetDashboardStats = "GetDashboardStats"
	OpGetTaskBoard      = "GetTaskBoard"
	OpGetAnalytics      = "GetAnalytics"
	OpGetLeaderboard    = "GetLeaderboard"

	OpPublishEvent   = "PublishEvent"
	OpListEvents     = "ListEvents"
	OpGetEvent       = "GetEvent"
	OpPublishArticle = "PublishArticle"
	OpListArticles   = "ListArticles"
	OpGetArticle     = "GetArticle"
	OpPostListing    = "PostListing"
	OpListListings   = "ListListings"
	OpResolveListing = "ResolveListing"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE AND RUNNER
// ══════════════════════════════════════════════════════════════════════════════

// Store bundles the repositories bound to one open transaction. Everything
// an operation touches through the same Store commits or rolls back as a
// unit.
type Store interface {
	Users() user.Repository
	Tasks() focus.TaskRepository
	Sessions() focus.SessionRepository
	Events() community.EventRepository
	Articles() community.ArticleRepository
	Listings() community.ListingRepository
}

// Runner opens a transaction scope and executes fn against a Store bound
// to it. Commits when fn returns nil, rolls back otherwise; the
// transaction is released in every outcome, including panic.
type Runner interface {
	RunInScope(ctx context.Context, op string, fn func(Store) error) error
}

// ══════════════════════════════════════════════════════════════════════════════
// RUN
// ══════════════════════════════════════════════════════════════════════════════

// Run executes one operation inside a scope and returns its typed result.
//
// Error contract: domain errors (validation, not-found, forbidden and the
// other shared kinds) pass through untouched so callers can map them to
// precise responses. Anything else is an infrastructure failure - it is
// logged server-side with the operation name and replaced by a generic
// storage error, so driver details never reach the caller.
func Run[T any](ctx context.Context, runner Runner, log *logger.Logger, op string, fn func(ctx context.Context, s Store) (T, error)) (T, error) {
	var result T

	err := runner.RunInScope(ctx, op, func(s Store) error {
		var fnErr error
		result, fnErr = fn(ctx, s)
		return fnErr
	})
	if err == nil {
		return result, nil
	}

	var zero T
	if isDomainError(err) {
		return zero, err
	}

	log.Error("operation failed in transaction scope",
		logger.Operation(op),
		logger.Err(err),
	)
	return zero, shared.WrapError("scope", op, shared.ErrStorageUnavailable, "operation could not be completed", nil)
}

// Exec is Run for operations with no result.
func Exec(ctx context.Context, runner Runner, log *logger.Logger, op string, fn func(ctx context.Context, s Store) error) error {
	_, err := Run(ctx, runner, log, op, func(ctx context.Context, s Store) (struct{}, error) {
		return struct{}{}, fn(ctx, s)
	})
	return err
}

// IsScopeFailure reports whether the error is the generic storage failure
// produced by Run, the signal the HTTP layer redirects on.
func IsScopeFailure(err error) bool {
	return shared.IsStorageUnavailable(err)
}

// isDomainError reports whether err carries one of the shared error kinds
// and is therefore safe to surface.
func isDomainError(err error) bool {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return true
	}
	var ve shared.ValidationErrors
	return errors.As(err, &ve)
}
