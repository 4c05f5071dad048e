package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/nikolayk812/morpho-cart/internal/port"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_storage_entries.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// testStorage checks the port.Storage contract shared by every adapter.
func testStorage(t *testing.T, storage port.Storage) {
	t.Helper()

	t.Run("get missing key: not found", func(t *testing.T) {
		value, found, err := storage.Get(t.Context(), gofakeit.UUID())
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set then get: ok", func(t *testing.T) {
		key := gofakeit.UUID()
		value := `[{"id":7,"name":"Latte","price":"۵۰,۰۰۰","quantity":1}]`

		require.NoError(t, storage.Set(t.Context(), key, value))

		got, found, err := storage.Get(t.Context(), key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, got)
	})

	t.Run("set overwrites: ok", func(t *testing.T) {
		key := gofakeit.UUID()

		require.NoError(t, storage.Set(t.Context(), key, "first"))
		require.NoError(t, storage.Set(t.Context(), key, "second"))

		got, found, err := storage.Get(t.Context(), key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "second", got)
	})

	t.Run("set empty value: ok", func(t *testing.T) {
		key := gofakeit.UUID()

		require.NoError(t, storage.Set(t.Context(), key, ""))

		got, found, err := storage.Get(t.Context(), key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, got)
	})

	t.Run("delete existing key: ok", func(t *testing.T) {
		key := gofakeit.UUID()
		require.NoError(t, storage.Set(t.Context(), key, gofakeit.Sentence(3)))

		require.NoError(t, storage.Delete(t.Context(), key))

		_, found, err := storage.Get(t.Context(), key)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete missing key: ok", func(t *testing.T) {
		require.NoError(t, storage.Delete(t.Context(), gofakeit.UUID()))
	})

	t.Run("empty key: error", func(t *testing.T) {
		_, _, err := storage.Get(t.Context(), "")
		require.EqualError(t, err, "key is empty")

		err = storage.Set(t.Context(), "", "value")
		require.EqualError(t, err, "key is empty")

		err = storage.Delete(t.Context(), "")
		require.EqualError(t, err, "key is empty")
	})
}
