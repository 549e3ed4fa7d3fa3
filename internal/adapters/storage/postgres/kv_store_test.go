package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"petstore-client/internal/ports/kv/kvtest"
)

func TestKVStore_Conformance(t *testing.T) {
	dsn := os.Getenv("PETSTORE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PETSTORE_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewKVStore(db, "test-"+uuid.NewString())
	require.NoError(t, s.Migrate(ctx))

	kvtest.Run(t, s, "")
}
