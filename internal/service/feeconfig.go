package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/lavanderia/backend/internal/fees"
)

// FeeSettingsKey is the settings-table key holding the fee configuration.
const FeeSettingsKey = "payment_method_fees"

// SettingsStore is the key-value persistence the fee configuration lives
// in. *repository.SettingsRepository satisfies it.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// FeeConfigStore is the single source of truth for current fee
// percentages. Reads never fail: missing or corrupt storage degrades to
// the built-in defaults, since the fee model is a convenience layer and
// not a system of record.
type FeeConfigStore struct {
	settings SettingsStore
}

func NewFeeConfigStore(settings SettingsStore) *FeeConfigStore {
	return &FeeConfigStore{settings: settings}
}

// GetFees returns the persisted configuration merged over the defaults,
// so every known method resolves even when storage is empty or partial.
// Callers fetch the config once per operation and work off that snapshot.
func (s *FeeConfigStore) GetFees(ctx context.Context) fees.Config {
	cfg := fees.DefaultConfig()

	raw, err := s.settings.Get(ctx, FeeSettingsKey)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Err(err).Msg("fee config read failed, using defaults")
		}
		return cfg
	}

	stored := map[string]float64{}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn().Err(err).Msg("fee config is corrupt, using defaults")
		return cfg
	}

	for method, pct := range stored {
		cfg[method] = pct
	}
	return cfg
}

// SaveFees overwrites the persisted configuration wholesale. In-flight
// operations keep the snapshot they already fetched.
func (s *FeeConfigStore) SaveFees(ctx context.Context, cfg fees.Config) error {
	for method, pct := range cfg {
		if pct < 0 {
			return fmt.Errorf("fee percentage for %q must not be negative", method)
		}
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode fee config: %w", err)
	}
	if err := s.settings.Set(ctx, FeeSettingsKey, string(raw)); err != nil {
		return fmt.Errorf("persist fee config: %w", err)
	}
	return nil
}
