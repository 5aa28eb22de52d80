package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/errors"
)

// StateRepository reads and writes the ReadingState record as one JSON blob.
// Every Save replaces the whole record.
type StateRepository struct {
	kv     KV
	logger *slog.Logger
}

// NewStateRepository creates a repository over kv.
func NewStateRepository(kv KV, logger *slog.Logger) *StateRepository {
	return &StateRepository{kv: kv, logger: logger}
}

// Load returns the persisted state. A missing record yields the first-run
// defaults; a record that cannot be decoded is a STORAGE error.
func (r *StateRepository) Load(ctx context.Context) (*domain.ReadingState, error) {
	data, err := r.kv.Get(ctx, StateKey)
	if errors.Is(err, ErrNotFound) {
		r.logger.Debug("no saved reading state, using defaults", "key", StateKey)
		return domain.NewReadingState(), nil
	}
	if err != nil {
		return nil, errors.Storage(err, "failed to read reading state")
	}

	var state domain.ReadingState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.Storage(err, "saved reading state is corrupt").
			WithDetails(map[string]any{"key": StateKey, "bytes": len(data)})
	}
	state.Normalize()

	r.logger.Debug("reading state loaded",
		"books", len(state.Books),
		"days", len(state.Daily),
	)
	return &state, nil
}

// Reset deletes the persisted record, so the next Load returns the first-run
// defaults.
func (r *StateRepository) Reset(ctx context.Context) error {
	if err := r.kv.Delete(ctx, StateKey); err != nil {
		return errors.Storage(err, "failed to reset reading state")
	}
	r.logger.Info("reading state reset", "key", StateKey)
	return nil
}

// Save writes state back under the fixed key.
func (r *StateRepository) Save(ctx context.Context, state *domain.ReadingState) error {
	state.Normalize()

	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode reading state")
	}

	if err := r.kv.Set(ctx, StateKey, data); err != nil {
		return errors.Storage(err, "failed to save reading state")
	}
	return nil
}
