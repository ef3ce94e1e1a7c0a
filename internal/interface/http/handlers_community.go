package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/application/command"
	"github.com/apex-hub/apex-campus-hub/internal/application/query"
	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMMUNITY READ MODELS
// ══════════════════════════════════════════════════════════════════════════════

type eventView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEventViews(events []*community.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, eventView{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			StartsAt:    e.StartsAt,
			CreatedAt:   e.CreatedAt,
		})
	}
	return views
}

type articleView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	AuthorID    string    `json:"author_id"`
	PublishedAt time.Time `json:"published_at"`
}

func toArticleView(a *community.Article) articleView {
	return articleView{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		AuthorID:    a.AuthorID,
		PublishedAt: a.PublishedAt,
	}
}

type listingView struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Contact     string     `json:"contact,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func toListingView(l *community.Listing) listingView {
	return listingView{
		ID:          l.ID,
		Kind:        string(l.Kind),
		UserID:      l.UserID,
		Title:       l.Title,
		Description: l.Description,
		Contact:     l.Contact,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		ResolvedAt:  l.ResolvedAt,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// HOME
// ══════════════════════════════════════════════════════════════════════════════

// handleHome serves the landing view with the most recent announcements.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	home, err := s.deps.GetHome.Handle(r.Context(), query.GetHomeQuery{})
	if err != nil {
		s.respondError(w, r, scope.OpHome, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recent_events": toEventViews(home.RecentEvents),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// EVENTS
// ══════════════════════════════════════════════════════════════════════════════

// handleListEvents returns upcoming campus events.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.deps.ListEvents.Handle(r.Context(), query.ListEventsQuery{
		Limit:  queryParamInt(r, "limit", 0),
		Offset: queryParamInt(r, "offset", 0),
	})
	if err != nil {
		s.respondError(w, r, scope.OpListEvents, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventViews(events))
}

// handleGetEvent returns one event by ID.
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.deps.GetEvent.Handle(r.Context(), query.GetEventQuery{
		EventID: r.PathValue("id"),
	})
	if err != nil {
		s.respondError(w, r, scope.OpGetEvent, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventViews([]*community.Event{event})[0])
}

type publishEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
}

// handlePublishEvent announces a campus event. Admin-only; the handler
// rejects non-admin callers.
func (s *Server) handlePublishEvent(w http.ResponseWriter, r *http.Request) {
	var req publishEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.PublishEvent.Handle(r.Context(), command.PublishEventCommand{
		UserID:      authenticatedUserID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		s.respondError(w, r, scope.OpPublishEvent, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventViews([]*community.Event{result.Event})[0])
}

// ══════════════════════════════════════════════════════════════════════════════
// ARTICLES
// ══════════════════════════════════════════════════════════════════════════════

// handleListArticles returns published articles, newest first.
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.deps.ListArticles.Handle(r.Context(), query.ListArticlesQuery{
		Limit:  queryParamInt(r, "limit", 0),
		Offset: queryParamInt(r, "offset", 0),
	})
	if err != nil {
		s.respondError(w, r, scope.OpListArticles, err)
		return
	}

	views := make([]articleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, toArticleView(a))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleGetArticle returns one article by ID.
func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.deps.GetArticle.Handle(r.Context(), query.GetArticleQuery{
		ArticleID: r.PathValue("id"),
	})
	if err != nil {
		s.respondError(w, r, scope.OpGetArticle, err)
		return
	}

	writeJSON(w, http.StatusOK, toArticleView(article))
}

type publishArticleRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// handlePublishArticle publishes an article. Admin-only.
func (s *Server) handlePublishArticle(w http.ResponseWriter, r *http.Request) {
	var req publishArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.PublishArticle.Handle(r.Context(), command.PublishArticleCommand{
		UserID: authenticatedUserID(r.Context()),
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		s.respondError(w, r, scope.OpPublishArticle, err)
		return
	}

	writeJSON(w, http.StatusCreated, toArticleView(result.Article))
}

// ══════════════════════════════════════════════════════════════════════════════
// LISTINGS
// ══════════════════════════════════════════════════════════════════════════════

// handleListListings returns active listings of one kind.
func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.deps.ListListings.Handle(r.Context(), query.ListListingsQuery{
		Kind:   r.URL.Query().Get("kind"),
		Limit:  queryParamInt(r, "limit", 0),
		Offset: queryParamInt(r, "offset", 0),
	})
	if err != nil {
		s.respondError(w, r, scope.OpListListings, err)
		return
	}

	views := make([]listingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, toListingView(l))
	}
	writeJSON(w, http.StatusOK, views)
}

type postListingRequest struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
}

// handlePostListing creates a lost&found / housing / donation listing.
func (s *Server) handlePostListing(w http.ResponseWriter, r *http.Request) {
	var req postListingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.PostListing.Handle(r.Context(), command.PostListingCommand{
		UserID:      authenticatedUserID(r.Context()),
		Kind:        req.Kind,
		Title:       req.Title,
		Description: req.Description,
		Contact:     req.Contact,
	})
	if err != nil {
		s.respondError(w, r, scope.OpPostListing, err)
		return
	}

	writeJSON(w, http.StatusCreated, toListingView(result.Listing))
}

// handleResolveListing closes a listing. Only the owner or an admin may
// resolve it.
func (s *Server) handleResolveListing(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ResolveListing.Handle(r.Context(), command.ResolveListingCommand{
		UserID:    authenticatedUserID(r.Context()),
		ListingID: r.PathValue("id"),
	})
	if err != nil {
		s.respondError(w, r, scope.OpResolveListing, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingView(result.Listing))
}

// queryParamInt extracts an integer query parameter with a default.
func queryParamInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
