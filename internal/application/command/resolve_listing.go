package command

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESOLVE LISTING COMMAND
// Closes a listing's active lifecycle. Owner or admin only; anyone else
// gets an explicit denial, not the silent no-op the task transitions use.
// ══════════════════════════════════════════════════════════════════════════════

// ResolveListingCommand contains the data to resolve a listing.
type ResolveListingCommand struct {
	// UserID is the authenticated caller.
	UserID string

	// ListingID is the listing to resolve.
	ListingID string
}

// Validate validates the command.
func (c ResolveListingCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if c.ListingID == "" {
		errs = append(errs, shared.FieldError{Field: "listing_id", Message: "listing id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolveListingResult contains the resolved listing.
type ResolveListingResult struct {
	Listing *community.Listing
}

// ResolveListingHandler handles the ResolveListingCommand.
type ResolveListingHandler struct {
	runner    scope.Runner
	publisher shared.EventPublisher
	log       *logger.Logger
	admins    AdminChecker
}

// NewResolveListingHandler creates a new ResolveListingHandler.
func NewResolveListingHandler(runner scope.Runner, publisher shared.EventPublisher, log *logger.Logger, admins AdminChecker) *ResolveListingHandler {
	return &ResolveListingHandler{runner: runner, publisher: publisher, log: log, admins: admins}
}

// Handle executes the resolve listing command.
func (h *ResolveListingHandler) Handle(ctx context.Context, cmd ResolveListingCommand) (*ResolveListingResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpResolveListing, func(ctx context.Context, s scope.Store) (*ResolveListingResult, error) {
		listing, err := s.Listings().GetByID(ctx, cmd.ListingID)
		if err != nil {
			return nil, err
		}

		actor, err := s.Users().GetByID(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		if !listing.CanBeResolvedBy(actor.ID, isAdmin(actor, h.admins)) {
			return nil, community.ErrListingDenied
		}

		if err := s.Listings().Resolve(ctx, listing.ID); err != nil {
			return nil, err
		}
		listing.Status = community.ListingResolved

		return &ResolveListingResult{Listing: listing}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("listing resolved",
		logger.UserID(cmd.UserID),
		logger.ListingID(cmd.ListingID),
	)
	if h.publisher != nil {
		h.publisher.Publish(shared.NewBaseEvent(shared.EventListingResolved, cmd.ListingID))
	}

	return result, nil
}
