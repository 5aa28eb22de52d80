package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versepace/versepace/internal/corpus"
	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/service"
	"github.com/versepace/versepace/internal/store"
	"github.com/versepace/versepace/internal/validation"
)

func setupReset(t *testing.T) (*service.ReadingService, *service.Session, *store.StateRepository) {
	t.Helper()

	kv, err := store.NewInMemory(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	repo := store.NewStateRepository(kv, slog.New(slog.DiscardHandler))
	svc := service.NewReadingService(repo, corpus.Parse("»Rute[1]\n1 E sucedeu"),
		validation.New(), slog.New(slog.DiscardHandler))

	ctx := context.Background()
	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.OpenBook(ctx, sess, 0)
	require.NoError(t, err)
	return svc, sess, repo
}

func TestResetProgress(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		erased bool
	}{
		{"yes", "y\n", true},
		{"yes word uppercase", "YES\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"no newline before EOF", "y", true},
		{"closed input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sess, repo := setupReset(t)
			ctx := context.Background()
			var out bytes.Buffer

			require.NoError(t, resetProgress(ctx, svc, sess, strings.NewReader(tt.answer), &out))

			saved, err := repo.Load(ctx)
			require.NoError(t, err)
			if tt.erased {
				assert.Contains(t, out.String(), "Reading progress erased.")
				assert.Equal(t, domain.NewReadingState(), saved)
				assert.False(t, sess.BookOpen())
			} else {
				assert.Contains(t, out.String(), "Nothing changed.")
				assert.NotNil(t, saved.CurrentBook)
				assert.True(t, sess.BookOpen())
			}
		})
	}
}
