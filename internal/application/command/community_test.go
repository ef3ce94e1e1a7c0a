package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

func TestPublishEvent_AdminRole(t *testing.T) {
	runner := scopetest.NewRunner()
	admin := seedUser(t, runner, "admin@apex.edu", "Secret123")
	runner.Store.UsersRepo.Accounts[admin.ID].Role = user.RoleAdmin

	pub := &capturePublisher{}
	handler := NewPublishEventHandler(runner, pub, testLogger(), nil)

	result, err := handler.Handle(context.Background(), PublishEventCommand{
		UserID:   admin.ID,
		Title:    "Hackathon kickoff",
		Location: "Main hall",
		StartsAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hackathon kickoff", result.Event.Title)
	assert.Len(t, runner.Store.EventsRepo.Events, 1)
	assert.Len(t, pub.events, 1)
}

func TestPublishEvent_AllowListBootstrap(t *testing.T) {
	runner := scopetest.NewRunner()
	// Stored role is member; the config allow-list grants admin.
	member := seedUser(t, runner, "dean@apex.edu", "Secret123")

	allow := func(email string) bool { return email == "dean@apex.edu" }
	handler := NewPublishEventHandler(runner, nil, testLogger(), allow)

	_, err := handler.Handle(context.Background(), PublishEventCommand{
		UserID:   member.ID,
		Title:    "Open day",
		StartsAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
}

func TestPublishEvent_MemberForbidden(t *testing.T) {
	runner := scopetest.NewRunner()
	member := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewPublishEventHandler(runner, nil, testLogger(), nil)

	_, err := handler.Handle(context.Background(), PublishEventCommand{
		UserID:   member.ID,
		Title:    "Unofficial party",
		StartsAt: time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)
	assert.True(t, shared.IsForbidden(err))
	assert.Empty(t, runner.Store.EventsRepo.Events)
}

func TestPublishArticle_MemberForbidden(t *testing.T) {
	runner := scopetest.NewRunner()
	member := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewPublishArticleHandler(runner, nil, testLogger(), nil)

	_, err := handler.Handle(context.Background(), PublishArticleCommand{
		UserID: member.ID,
		Title:  "Exam survival guide",
		Body:   "Sleep. Hydrate. Start early.",
	})
	require.Error(t, err)
	assert.True(t, shared.IsForbidden(err))
}

func TestPublishArticle_Admin(t *testing.T) {
	runner := scopetest.NewRunner()
	admin := seedUser(t, runner, "admin@apex.edu", "Secret123")
	runner.Store.UsersRepo.Accounts[admin.ID].Role = user.RoleAdmin

	handler := NewPublishArticleHandler(runner, nil, testLogger(), nil)

	result, err := handler.Handle(context.Background(), PublishArticleCommand{
		UserID: admin.ID,
		Title:  "Exam survival guide",
		Body:   "Sleep. Hydrate. Start early.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Article.ID)
	assert.Len(t, runner.Store.ArticlesRepo.Articles, 1)
}

func TestPostListing(t *testing.T) {
	runner := scopetest.NewRunner()
	member := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewPostListingHandler(runner, nil, testLogger())

	result, err := handler.Handle(context.Background(), PostListingCommand{
		UserID:  member.ID,
		Kind:    "lost_found",
		Title:   "Lost: black backpack",
		Contact: "@dana",
	})
	require.NoError(t, err)
	assert.Equal(t, community.ListingActive, result.Listing.Status)
	assert.Equal(t, community.KindLostFound, result.Listing.Kind)
}

func TestPostListing_InvalidKind(t *testing.T) {
	handler := NewPostListingHandler(scopetest.NewRunner(), nil, testLogger())

	_, err := handler.Handle(context.Background(), PostListingCommand{
		UserID: "user-1",
		Kind:   "garage_sale",
		Title:  "Old couch",
	})
	require.Error(t, err)

	var ve shared.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "kind", ve[0].Field)
}

func seedListing(t *testing.T, runner *scopetest.Runner, ownerID string) *community.Listing {
	t.Helper()

	listing, err := community.NewListing(community.KindLostFound, ownerID, "Lost: umbrella", "", "@owner")
	require.NoError(t, err)
	require.NoError(t, runner.Store.ListingsRepo.Create(context.Background(), listing))
	return listing
}

func TestResolveListing_Owner(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	listing := seedListing(t, runner, owner.ID)

	pub := &capturePublisher{}
	handler := NewResolveListingHandler(runner, pub, testLogger(), nil)

	result, err := handler.Handle(context.Background(), ResolveListingCommand{
		UserID:    owner.ID,
		ListingID: listing.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, community.ListingResolved, result.Listing.Status)
	assert.Len(t, pub.events, 1)

	stored := runner.Store.ListingsRepo.Listings[listing.ID]
	assert.Equal(t, community.ListingResolved, stored.Status)
	require.NotNil(t, stored.ResolvedAt)
}

func TestResolveListing_StrangerForbidden(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	stranger := seedUser(t, runner, "erlan@apex.edu", "Secret123")
	listing := seedListing(t, runner, owner.ID)

	handler := NewResolveListingHandler(runner, nil, testLogger(), nil)

	_, err := handler.Handle(context.Background(), ResolveListingCommand{
		UserID:    stranger.ID,
		ListingID: listing.ID,
	})
	require.Error(t, err)
	assert.True(t, shared.IsForbidden(err))
	assert.Equal(t, community.ListingActive, runner.Store.ListingsRepo.Listings[listing.ID].Status)
}

func TestResolveListing_AdminOverride(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	admin := seedUser(t, runner, "admin@apex.edu", "Secret123")
	runner.Store.UsersRepo.Accounts[admin.ID].Role = user.RoleAdmin
	listing := seedListing(t, runner, owner.ID)

	handler := NewResolveListingHandler(runner, nil, testLogger(), nil)

	result, err := handler.Handle(context.Background(), ResolveListingCommand{
		UserID:    admin.ID,
		ListingID: listing.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, community.ListingResolved, result.Listing.Status)
}

func TestResolveListing_AlreadyResolved(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	listing := seedListing(t, runner, owner.ID)

	handler := NewResolveListingHandler(runner, nil, testLogger(), nil)

	_, err := handler.Handle(context.Background(), ResolveListingCommand{UserID: owner.ID, ListingID: listing.ID})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), ResolveListingCommand{UserID: owner.ID, ListingID: listing.ID})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err), "a resolved listing is no longer an active target")
}
