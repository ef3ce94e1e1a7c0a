package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

func seedEvent(t *testing.T, runner *scopetest.Runner, title string) *community.Event {
	t.Helper()

	e, err := community.NewEvent(title, "", "Main hall", time.Now().Add(24*time.Hour), "admin-1")
	require.NoError(t, err)
	require.NoError(t, runner.Store.EventsRepo.Create(context.Background(), e))
	return e
}

func seedListing(t *testing.T, runner *scopetest.Runner, kind community.ListingKind, title string) *community.Listing {
	t.Helper()

	l, err := community.NewListing(kind, "user-1", title, "", "@user")
	require.NoError(t, err)
	require.NoError(t, runner.Store.ListingsRepo.Create(context.Background(), l))
	return l
}

func TestGetEvent(t *testing.T) {
	runner := scopetest.NewRunner()
	seeded := seedEvent(t, runner, "Career fair")

	handler := NewGetEventHandler(runner, testLogger())

	got, err := handler.Handle(context.Background(), GetEventQuery{EventID: seeded.ID})
	require.NoError(t, err)
	assert.Equal(t, "Career fair", got.Title)

	_, err = handler.Handle(context.Background(), GetEventQuery{EventID: "no-such-event"})
	assert.True(t, shared.IsNotFound(err))

	_, err = handler.Handle(context.Background(), GetEventQuery{})
	assert.True(t, shared.IsValidation(err))
}

func TestGetArticle(t *testing.T) {
	runner := scopetest.NewRunner()
	a, err := community.NewArticle("Dorm cooking 101", "Rice cooker. That is the whole article.", "admin-1")
	require.NoError(t, err)
	require.NoError(t, runner.Store.ArticlesRepo.Create(context.Background(), a))

	handler := NewGetArticleHandler(runner, testLogger())

	got, err := handler.Handle(context.Background(), GetArticleQuery{ArticleID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, "Dorm cooking 101", got.Title)

	_, err = handler.Handle(context.Background(), GetArticleQuery{ArticleID: "no-such-article"})
	assert.True(t, shared.IsNotFound(err))
}

func TestGetHome(t *testing.T) {
	runner := scopetest.NewRunner()
	for i := 1; i <= 5; i++ {
		seedEvent(t, runner, fmt.Sprintf("Event %d", i))
	}

	handler := NewGetHomeHandler(runner, testLogger())

	view, err := handler.Handle(context.Background(), GetHomeQuery{})
	require.NoError(t, err)

	require.Len(t, view.RecentEvents, HomeEventCount)
	assert.Equal(t, "Event 5", view.RecentEvents[0].Title, "newest first")
}

func TestGetHome_Empty(t *testing.T) {
	handler := NewGetHomeHandler(scopetest.NewRunner(), testLogger())

	view, err := handler.Handle(context.Background(), GetHomeQuery{})
	require.NoError(t, err)
	assert.NotNil(t, view.RecentEvents, "empty slice, not nil, so JSON renders []")
	assert.Empty(t, view.RecentEvents)
}

func TestListEvents_Pagination(t *testing.T) {
	runner := scopetest.NewRunner()
	for i := 1; i <= 7; i++ {
		seedEvent(t, runner, fmt.Sprintf("Event %d", i))
	}

	handler := NewListEventsHandler(runner, testLogger())

	page, err := handler.Handle(context.Background(), ListEventsQuery{Limit: 3, Offset: 3})
	require.NoError(t, err)

	require.Len(t, page, 3)
	assert.Equal(t, "Event 4", page[0].Title)
	assert.Equal(t, "Event 2", page[2].Title)
}

func TestListEvents_DefaultPageSize(t *testing.T) {
	runner := scopetest.NewRunner()
	for i := 0; i < 25; i++ {
		seedEvent(t, runner, fmt.Sprintf("Event %d", i))
	}

	handler := NewListEventsHandler(runner, testLogger())

	page, err := handler.Handle(context.Background(), ListEventsQuery{})
	require.NoError(t, err)
	assert.Len(t, page, 20, "zero limit falls back to the default page size")
}

func TestListListings_FiltersKindAndStatus(t *testing.T) {
	runner := scopetest.NewRunner()
	seedListing(t, runner, community.KindHousing, "Room near campus")
	seedListing(t, runner, community.KindLostFound, "Lost: umbrella")
	resolved := seedListing(t, runner, community.KindHousing, "Old room ad")
	require.NoError(t, runner.Store.ListingsRepo.Resolve(context.Background(), resolved.ID))

	handler := NewListListingsHandler(runner, testLogger())

	listings, err := handler.Handle(context.Background(), ListListingsQuery{Kind: "housing"})
	require.NoError(t, err)

	require.Len(t, listings, 1, "resolved and foreign-kind listings are excluded")
	assert.Equal(t, "Room near campus", listings[0].Title)
}

func TestListListings_InvalidKind(t *testing.T) {
	handler := NewListListingsHandler(scopetest.NewRunner(), testLogger())

	_, err := handler.Handle(context.Background(), ListListingsQuery{Kind: "garage_sale"})
	require.Error(t, err)

	var ve shared.ValidationErrors
	assert.ErrorAs(t, err, &ve)
}

func TestGetProfile(t *testing.T) {
	runner := scopetest.NewRunner()
	account := seedUser(t, runner, "dana@apex.edu", 300)

	handler := NewGetProfileHandler(runner, testLogger())

	profile, err := handler.Handle(context.Background(), GetProfileQuery{UserID: account.ID})
	require.NoError(t, err)
	assert.Equal(t, account.ID, profile.ID)
	assert.Equal(t, 300, profile.XP.Int())
}

func TestGetProfile_UnknownUser(t *testing.T) {
	handler := NewGetProfileHandler(scopetest.NewRunner(), testLogger())

	_, err := handler.Handle(context.Background(), GetProfileQuery{UserID: "no-such-user"})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
