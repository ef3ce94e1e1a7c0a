// Package scopetest provides in-memory fakes of the transaction scope
// for handler tests: a Store backed by maps and a Runner that mimics
// commit/rollback by snapshotting the store around each operation.
// Not safe for concurrent use; tests drive it from one goroutine.
package scopetest

import (
	"context"
	"sort"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// RUNNER
// ══════════════════════════════════════════════════════════════════════════════

// Runner executes scope operations against an in-memory Store. When fn
// fails the store is rolled back to its pre-operation state, matching
// the transactional contract.
type Runner struct {
	Store *Store

	// Err, when set, is returned without running fn: it simulates an
	// infrastructure failure opening the transaction.
	Err error

	// Ops records the operation names in execution order.
	Ops []string
}

// NewRunner creates a Runner over a fresh Store.
func NewRunner() *Runner {
	return &Runner{Store: NewStore()}
}

// RunInScope implements scope.Runner.
func (r *Runner) RunInScope(ctx context.Context, op string, fn func(scope.Store) error) error {
	r.Ops = append(r.Ops, op)
	if r.Err != nil {
		return r.Err
	}

	snap := r.Store.snapshot()
	if err := fn(r.Store); err != nil {
		r.Store.restore(snap)
		return err
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store implements scope.Store over in-memory maps. The concrete repos
// are exported so tests can seed and inspect state directly.
type Store struct {
	UsersRepo    *UserRepo
	TasksRepo    *TaskRepo
	SessionsRepo *SessionRepo
	EventsRepo   *EventRepo
	ArticlesRepo *ArticleRepo
	ListingsRepo *ListingRepo
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		UsersRepo:    &UserRepo{Accounts: make(map[string]*user.User)},
		TasksRepo:    &TaskRepo{Tasks: make(map[string]*focus.Task)},
		SessionsRepo: &SessionRepo{},
		EventsRepo:   &EventRepo{},
		ArticlesRepo: &ArticleRepo{},
		ListingsRepo: &ListingRepo{Listings: make(map[string]*community.Listing)},
	}
}

func (s *Store) Users() user.Repository                { return s.UsersRepo }
func (s *Store) Tasks() focus.TaskRepository           { return s.TasksRepo }
func (s *Store) Sessions() focus.SessionRepository     { return s.SessionsRepo }
func (s *Store) Events() community.EventRepository     { return s.EventsRepo }
func (s *Store) Articles() community.ArticleRepository { return s.ArticlesRepo }
func (s *Store) Listings() community.ListingRepository { return s.ListingsRepo }

type storeSnapshot struct {
	users    map[string]*user.User
	tasks    map[string]*focus.Task
	seq      int64
	sessions []*focus.StudySession
	events   []*community.Event
	articles []*community.Article
	listings map[string]*community.Listing
}

func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		users:    make(map[string]*user.User, len(s.UsersRepo.Accounts)),
		tasks:    make(map[string]*focus.Task, len(s.TasksRepo.Tasks)),
		seq:      s.TasksRepo.seq,
		listings: make(map[string]*community.Listing, len(s.ListingsRepo.Listings)),
	}
	for id, u := range s.UsersRepo.Accounts {
		c := *u
		snap.users[id] = &c
	}
	for id, t := range s.TasksRepo.Tasks {
		c := *t
		snap.tasks[id] = &c
	}
	for _, sess := range s.SessionsRepo.Sessions {
		c := *sess
		snap.sessions = append(snap.sessions, &c)
	}
	for _, e := range s.EventsRepo.Events {
		c := *e
		snap.events = append(snap.events, &c)
	}
	for _, a := range s.ArticlesRepo.Articles {
		c := *a
		snap.articles = append(snap.articles, &c)
	}
	for id, l := range s.ListingsRepo.Listings {
		c := *l
		snap.listings[id] = &c
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.UsersRepo.Accounts = snap.users
	s.TasksRepo.Tasks = snap.tasks
	s.TasksRepo.seq = snap.seq
	s.SessionsRepo.Sessions = snap.sessions
	s.EventsRepo.Events = snap.events
	s.ArticlesRepo.Articles = snap.articles
	s.ListingsRepo.Listings = snap.listings
}

// ══════════════════════════════════════════════════════════════════════════════
// USER REPO
// ══════════════════════════════════════════════════════════════════════════════

// UserRepo is an in-memory user.Repository.
type UserRepo struct {
	Accounts map[string]*user.User
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range r.Accounts {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	c := *u
	r.Accounts[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := r.Accounts[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.Accounts {
		if u.Email.String() == email {
			c := *u
			return &c, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id string, p user.ProfileUpdate) error {
	u, ok := r.Accounts[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.PhoneNumber = p.PhoneNumber
	u.Bio = p.Bio
	u.Branch = p.Branch
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepo) AddXP(ctx context.Context, id string, delta user.XP) (user.XPAward, error) {
	if delta <= 0 {
		return user.XPAward{}, shared.NewDomainError("user", "AddXP", shared.ErrInvalidInput, "xp delta must be positive")
	}
	u, ok := r.Accounts[id]
	if !ok {
		return user.XPAward{}, user.ErrUserNotFound
	}
	u.XP += delta
	u.Level = user.CalculateLevel(u.XP)
	return user.XPAward{Delta: delta, NewXP: u.XP, NewLevel: u.Level}, nil
}

func (r *UserRepo) TopByXP(ctx context.Context, limit int) ([]user.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	accounts := make([]*user.User, 0, len(r.Accounts))
	for _, u := range r.Accounts {
		accounts = append(accounts, u)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].XP != accounts[j].XP {
			return accounts[i].XP > accounts[j].XP
		}
		return accounts[i].ID < accounts[j].ID
	})

	if len(accounts) > limit {
		accounts = accounts[:limit]
	}

	entries := make([]user.LeaderboardEntry, 0, len(accounts))
	for i, u := range accounts {
		entries = append(entries, user.LeaderboardEntry{
			UserID:      u.ID,
			DisplayName: u.DisplayName(),
			XP:          u.XP.Int(),
			Level:       u.Level.Int(),
			Rank:        i + 1,
		})
	}
	return entries, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// TASK REPO
// ══════════════════════════════════════════════════════════════════════════════

// TaskRepo is an in-memory focus.TaskRepository.
type TaskRepo struct {
	Tasks map[string]*focus.Task
	seq   int64
}

func (r *TaskRepo) Create(ctx context.Context, t *focus.Task) error {
	r.seq++
	t.Seq = r.seq
	c := *t
	r.Tasks[t.ID] = &c
	return nil
}

func (r *TaskRepo) Start(ctx context.Context, taskID, userID string) (bool, error) {
	t, ok := r.Tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	t.Status = focus.StatusInProgress
	return true, nil
}

func (r *TaskRepo) Complete(ctx context.Context, taskID, userID string, onlyIfNotCompleted bool) (bool, error) {
	t, ok := r.Tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	if onlyIfNotCompleted && t.Status == focus.StatusCompleted {
		return false, nil
	}
	t.Status = focus.StatusCompleted
	return true, nil
}

func (r *TaskRepo) Board(ctx context.Context, userID string) (*focus.Board, error) {
	board := &focus.Board{
		Pending:    []*focus.Task{},
		InProgress: []*focus.Task{},
		Completed:  []*focus.Task{},
	}

	var all []*focus.Task
	for _, t := range r.Tasks {
		if t.UserID == userID {
			c := *t
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Priority != all[j].Priority {
			return all[i].Priority > all[j].Priority
		}
		return all[i].Seq > all[j].Seq
	})

	for _, t := range all {
		switch t.Status {
		case focus.StatusPending:
			board.Pending = append(board.Pending, t)
		case focus.StatusInProgress:
			board.InProgress = append(board.InProgress, t)
		}
	}

	// Completed sorts by recency alone.
	var completed []*focus.Task
	for _, t := range all {
		if t.Status == focus.StatusCompleted {
			completed = append(completed, t)
		}
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i].Seq > completed[j].Seq })
	if len(completed) > focus.CompletedBoardLimit {
		completed = completed[:focus.CompletedBoardLimit]
	}
	board.Completed = completed
	if board.Completed == nil {
		board.Completed = []*focus.Task{}
	}

	return board, nil
}

func (r *TaskRepo) CountByStatus(ctx context.Context, userID string, status focus.TaskStatus) (int, error) {
	count := 0
	for _, t := range r.Tasks {
		if t.UserID == userID && t.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *TaskRepo) CompletedCategoryCounts(ctx context.Context, userID string) ([]focus.CategoryCount, error) {
	byCategory := make(map[string]int)
	for _, t := range r.Tasks {
		if t.UserID == userID && t.Status == focus.StatusCompleted {
			byCategory[t.Category]++
		}
	}

	counts := make([]focus.CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		counts = append(counts, focus.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	return counts, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION REPO
// ══════════════════════════════════════════════════════════════════════════════

// SessionRepo is an in-memory focus.SessionRepository.
type SessionRepo struct {
	Sessions []*focus.StudySession
}

func (r *SessionRepo) Create(ctx context.Context, s *focus.StudySession) error {
	c := *s
	r.Sessions = append(r.Sessions, &c)
	return nil
}

func (r *SessionRepo) MinutesBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	total := 0
	for _, s := range r.Sessions {
		if s.UserID != userID {
			continue
		}
		if !s.CompletedAt.Before(from) && s.CompletedAt.Before(to) {
			total += s.DurationMinutes
		}
	}
	return total, nil
}

func (r *SessionRepo) TotalMinutes(ctx context.Context, userID string) (int, error) {
	total := 0
	for _, s := range r.Sessions {
		if s.UserID == userID {
			total += s.DurationMinutes
		}
	}
	return total, nil
}

func (r *SessionRepo) CountSessions(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, s := range r.Sessions {
		if s.UserID == userID {
			count++
		}
	}
	return count, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMUNITY REPOS
// ══════════════════════════════════════════════════════════════════════════════

// EventRepo is an in-memory community.EventRepository.
type EventRepo struct {
	Events []*community.Event
}

func (r *EventRepo) Create(ctx context.Context, e *community.Event) error {
	c := *e
	r.Events = append(r.Events, &c)
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*community.Event, error) {
	for _, e := range r.Events {
		if e.ID == id {
			c := *e
			return &c, nil
		}
	}
	return nil, shared.NewDomainError("community", "GetEvent", shared.ErrNotFound, "event not found")
}

func (r *EventRepo) List(ctx context.Context, p shared.Pagination) ([]*community.Event, error) {
	// Newest first by insertion order.
	out := make([]*community.Event, 0, len(r.Events))
	for i := len(r.Events) - 1; i >= 0; i-- {
		c := *r.Events[i]
		out = append(out, &c)
	}
	return paginate(out, p), nil
}

// ArticleRepo is an in-memory community.ArticleRepository.
type ArticleRepo struct {
	Articles []*community.Article
}

func (r *ArticleRepo) Create(ctx context.Context, a *community.Article) error {
	c := *a
	r.Articles = append(r.Articles, &c)
	return nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*community.Article, error) {
	for _, a := range r.Articles {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, shared.NewDomainError("community", "GetArticle", shared.ErrNotFound, "article not found")
}

func (r *ArticleRepo) List(ctx context.Context, p shared.Pagination) ([]*community.Article, error) {
	out := make([]*community.Article, 0, len(r.Articles))
	for i := len(r.Articles) - 1; i >= 0; i-- {
		c := *r.Articles[i]
		out = append(out, &c)
	}
	return paginate(out, p), nil
}

// ListingRepo is an in-memory community.ListingRepository.
type ListingRepo struct {
	Listings map[string]*community.Listing
	order    []string
}

func (r *ListingRepo) Create(ctx context.Context, l *community.Listing) error {
	c := *l
	r.Listings[l.ID] = &c
	r.order = append(r.order, l.ID)
	return nil
}

func (r *ListingRepo) GetByID(ctx context.Context, id string) (*community.Listing, error) {
	l, ok := r.Listings[id]
	if !ok {
		return nil, shared.NewDomainError("community", "GetListing", shared.ErrNotFound, "listing not found")
	}
	c := *l
	return &c, nil
}

func (r *ListingRepo) ListActiveByKind(ctx context.Context, kind community.ListingKind, p shared.Pagination) ([]*community.Listing, error) {
	var out []*community.Listing
	for i := len(r.order) - 1; i >= 0; i-- {
		l, ok := r.Listings[r.order[i]]
		if !ok {
			continue
		}
		if l.Kind == kind && l.Status == community.ListingActive {
			c := *l
			out = append(out, &c)
		}
	}
	return paginate(out, p), nil
}

func (r *ListingRepo) Resolve(ctx context.Context, id string) error {
	l, ok := r.Listings[id]
	if !ok || l.Status != community.ListingActive {
		return shared.NewDomainError("community", "ResolveListing", shared.ErrNotFound, "active listing not found")
	}
	now := time.Now().UTC()
	l.Status = community.ListingResolved
	l.ResolvedAt = &now
	return nil
}

func paginate[T any](items []T, p shared.Pagination) []T {
	if p.Offset > 0 {
		if p.Offset >= len(items) {
			return []T{}
		}
		items = items[p.Offset:]
	}
	if p.Limit > 0 && len(items) > p.Limit {
		items = items[:p.Limit]
	}
	return items
}
