package command

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// PUBLISH ARTICLE COMMAND
// Publishes a hub article. Admin only.
// ══════════════════════════════════════════════════════════════════════════════

// PublishArticleCommand contains the article form data.
type PublishArticleCommand struct {
	// UserID is the authenticated caller.
	UserID string

	Title string
	Body  string
}

// Validate validates the command.
func (c PublishArticleCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if c.Title == "" {
		errs = append(errs, shared.FieldError{Field: "title", Message: "title is required"})
	}
	if c.Body == "" {
		errs = append(errs, shared.FieldError{Field: "body", Message: "body is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishArticleResult contains the published article.
type PublishArticleResult struct {
	Article *community.Article
}

// PublishArticleHandler handles the PublishArticleCommand.
type PublishArticleHandler struct {
	runner    scope.Runner
	publisher shared.EventPublisher
	log       *logger.Logger
	admins    AdminChecker
}

// NewPublishArticleHandler creates a new PublishArticleHandler.
func NewPublishArticleHandler(runner scope.Runner, publisher shared.EventPublisher, log *logger.Logger, admins AdminChecker) *PublishArticleHandler {
	return &PublishArticleHandler{runner: runner, publisher: publisher, log: log, admins: admins}
}

// Handle executes the publish article command.
func (h *PublishArticleHandler) Handle(ctx context.Context, cmd PublishArticleCommand) (*PublishArticleResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpPublishArticle, func(ctx context.Context, s scope.Store) (*PublishArticleResult, error) {
		actor, err := s.Users().GetByID(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		if !isAdmin(actor, h.admins) {
			return nil, shared.NewDomainError("community", "PublishArticle", shared.ErrForbidden, "only admins can publish articles")
		}

		article, err := community.NewArticle(cmd.Title, cmd.Body, actor.ID)
		if err != nil {
			return nil, err
		}
		if err := s.Articles().Create(ctx, article); err != nil {
			return nil, err
		}

		return &PublishArticleResult{Article: article}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("article published", logger.UserID(cmd.UserID), logger.String("article_id", result.Article.ID))
	if h.publisher != nil {
		h.publisher.Publish(shared.NewBaseEvent(shared.EventArticlePublished, result.Article.ID))
	}

	return result, nil
}
