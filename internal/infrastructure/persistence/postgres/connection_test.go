package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
)

func TestTxOptions(t *testing.T) {
	def := DefaultTxOptions()
	assert.Equal(t, pgx.ReadCommitted, def.IsoLevel)
	assert.Equal(t, pgx.ReadWrite, def.AccessMode)

	ro := ReadOnlyTxOptions()
	assert.Equal(t, pgx.ReadCommitted, ro.IsoLevel)
	assert.Equal(t, pgx.ReadOnly, ro.AccessMode)
}

func TestReadOnlyOps(t *testing.T) {
	reads := []string{
		scope.OpHome,
		scope.OpGetProfile,
		scope.OpGetDashboardStats,
		scope.OpGetTaskBoard,
		scope.OpGetAnalytics,
		scope.OpGetLeaderboard,
		scope.OpListEvents,
		scope.OpGetEvent,
		scope.OpListArticles,
		scope.OpGetArticle,
		scope.OpListListings,
	}
	for _, op := range reads {
		assert.True(t, readOnlyOps[op], "op %s should run read-only", op)
	}

	writes := []string{
		scope.OpRegisterUser,
		scope.OpLoginUser,
		scope.OpUpdateProfile,
		scope.OpAddTask,
		scope.OpStartTask,
		scope.OpCompleteTask,
		scope.OpRecordSession,
		scope.OpPublishEvent,
		scope.OpPublishArticle,
		scope.OpPostListing,
		scope.OpResolveListing,
	}
	for _, op := range writes {
		assert.False(t, readOnlyOps[op], "op %s must run read-write", op)
	}
}

func TestErrorHelpers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))

	assert.True(t, IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(fk))
}

func TestGetMigrations(t *testing.T) {
	migrations := GetMigrations()
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "versions are contiguous from 1")
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpSQL)
	}
}
