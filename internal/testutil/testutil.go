package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mathadv/quiz/internal/db"
)

// NewTestDB creates an in-memory database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
