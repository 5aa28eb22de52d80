package store_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versepace/versepace/internal/errors"
	"github.com/versepace/versepace/internal/store"
)

func TestErrNotFound_IsDomainNotFound(t *testing.T) {
	assert.True(t, errors.Is(store.ErrNotFound, errors.ErrNotFound))
	assert.False(t, errors.Is(store.ErrNotFound, errors.ErrStorage))

	wrapped := fmt.Errorf("get %s: %w", store.StateKey, store.ErrNotFound)
	assert.ErrorIs(t, wrapped, store.ErrNotFound)
}

func TestGet_MissingKeyIsNotFound(t *testing.T) {
	kv, err := store.NewInMemory(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get(context.Background(), "versepace:missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
