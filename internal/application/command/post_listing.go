package command

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// POST LISTING COMMAND
// Posts a classified listing (lost and found, housing, donation). Any
// authenticated member may post.
// ══════════════════════════════════════════════════════════════════════════════

// PostListingCommand contains the listing form data.
type PostListingCommand struct {
	// UserID is the authenticated caller.
	UserID string

	Kind        string
	Title       string
	Description string
	Contact     string
}

// Validate validates the command.
func (c PostListingCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if !community.ListingKind(c.Kind).IsValid() {
		errs = append(errs, shared.FieldError{Field: "kind", Message: "kind must be lost_found, housing or donation"})
	}
	if c.Title == "" {
		errs = append(errs, shared.FieldError{Field: "title", Message: "title is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PostListingResult contains the created listing.
type PostListingResult struct {
	Listing *community.Listing
}

// PostListingHandler handles the PostListingCommand.
type PostListingHandler struct {
	runner    scope.Runner
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewPostListingHandler creates a new PostListingHandler.
func NewPostListingHandler(runner scope.Runner, publisher shared.EventPublisher, log *logger.Logger) *PostListingHandler {
	return &PostListingHandler{runner: runner, publisher: publisher, log: log}
}

// Handle executes the post listing command.
func (h *PostListingHandler) Handle(ctx context.Context, cmd PostListingCommand) (*PostListingResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	listing, err := community.NewListing(community.ListingKind(cmd.Kind), cmd.UserID, cmd.Title, cmd.Description, cmd.Contact)
	if err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpPostListing, func(ctx context.Context, s scope.Store) (*PostListingResult, error) {
		if err := s.Listings().Create(ctx, listing); err != nil {
			return nil, err
		}
		return &PostListingResult{Listing: listing}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("listing posted",
		logger.UserID(cmd.UserID),
		logger.ListingID(listing.ID),
		logger.String("kind", string(listing.Kind)),
	)
	if h.publisher != nil {
		h.publisher.Publish(shared.NewBaseEvent(shared.EventListingPosted, listing.ID))
	}

	return result, nil
}
