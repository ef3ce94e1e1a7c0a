package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository for PostgreSQL. It executes
// against whatever Querier it was built with, so the same code serves
// pooled and transactional access.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(q Querier) *UserRepository {
	return &UserRepository{q: q}
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, phone_number,
			branch, bio, role, xp, level, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.q.Exec(ctx, query,
		u.ID,
		u.Email.String(),
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.PhoneNumber,
		u.Branch,
		u.Bio,
		string(u.Role),
		u.XP.Int(),
		u.Level.Int(),
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

const userColumns = `
	id, email, password_hash, first_name, last_name, phone_number,
	branch, bio, role, xp, level, created_at, updated_at
`

// GetByID returns an account by internal ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	row := r.q.QueryRow(ctx, query, id)
	return r.scanUser(row)
}

// GetByEmail returns an account by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	row := r.q.QueryRow(ctx, query, email)
	return r.scanUser(row)
}

// UpdateProfile replaces the mutable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, p user.ProfileUpdate) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, phone_number = $4, bio = $5,
		    branch = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, id, p.FirstName, p.LastName, p.PhoneNumber, p.Bio, p.Branch, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// AddXP increments xp and recomputes level in one statement, so the
// stored level can never go stale relative to xp.
func (r *UserRepository) AddXP(ctx context.Context, id string, delta user.XP) (user.XPAward, error) {
	if delta <= 0 {
		return user.XPAward{}, shared.NewDomainError("user", "AddXP", shared.ErrInvalidInput, "xp delta must be positive")
	}

	query := `
		UPDATE users
		SET xp = xp + $2,
		    level = 1 + (xp + $2) / 1000,
		    updated_at = $3
		WHERE id = $1
		RETURNING xp, level
	`

	var newXP, newLevel int
	err := r.q.QueryRow(ctx, query, id, delta.Int(), time.Now().UTC()).Scan(&newXP, &newLevel)
	if err != nil {
		if IsNoRows(err) {
			return user.XPAward{}, user.ErrUserNotFound
		}
		return user.XPAward{}, fmt.Errorf("failed to add xp: %w", err)
	}

	return user.XPAward{
		Delta:    delta,
		NewXP:    user.XP(newXP),
		NewLevel: user.Level(newLevel),
	}, nil
}

// TopByXP returns the top-N ranking. The id tie-break keeps the order
// stable between reads.
func (r *UserRepository) TopByXP(ctx context.Context, limit int) ([]user.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, first_name, last_name, xp, level
		FROM users
		ORDER BY xp DESC, id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]user.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e user.LeaderboardEntry
		var firstName, lastName string

		if err := rows.Scan(&e.UserID, &firstName, &lastName, &e.XP, &e.Level); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}

		e.DisplayName = firstName
		if lastName != "" {
			e.DisplayName = firstName + " " + lastName
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// scanUser scans a single user row.
func (r *UserRepository) scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var email, role string
	var xp, level int

	err := row.Scan(
		&u.ID,
		&email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.PhoneNumber,
		&u.Branch,
		&u.Bio,
		&role,
		&xp,
		&level,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.Email = shared.Email(email)
	u.Role = user.Role(role)
	u.XP = user.XP(xp)
	u.Level = user.Level(level)
	return &u, nil
}
