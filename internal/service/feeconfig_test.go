package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavanderia/backend/internal/fees"
)

type fakeSettings struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]string{}}
}

func (f *fakeSettings) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return v, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func TestFeeConfigStore_GetFees_EmptyStorageReturnsDefaults(t *testing.T) {
	store := NewFeeConfigStore(newFakeSettings())

	cfg := store.GetFees(context.Background())

	assert.Equal(t, fees.DefaultConfig(), cfg)
}

func TestFeeConfigStore_GetFees_ReadErrorDegradesToDefaults(t *testing.T) {
	settings := newFakeSettings()
	settings.getErr = errors.New("connection refused")
	store := NewFeeConfigStore(settings)

	cfg := store.GetFees(context.Background())

	assert.Equal(t, fees.DefaultConfig(), cfg)
}

func TestFeeConfigStore_GetFees_CorruptValueDegradesToDefaults(t *testing.T) {
	settings := newFakeSettings()
	settings.values[FeeSettingsKey] = "{not json"
	store := NewFeeConfigStore(settings)

	cfg := store.GetFees(context.Background())

	assert.Equal(t, fees.DefaultConfig(), cfg)
}

func TestFeeConfigStore_GetFees_MergesOverridesOverDefaults(t *testing.T) {
	settings := newFakeSettings()
	settings.values[FeeSettingsKey] = `{"Pix": 1.5, "Cartão de Crédito (3x)": 4.5}`
	store := NewFeeConfigStore(settings)

	cfg := store.GetFees(context.Background())

	assert.Equal(t, 1.5, cfg["Pix"])
	assert.Equal(t, 4.5, cfg["Cartão de Crédito (3x)"])
	// Unlisted known methods still resolve, at the default zero.
	assert.Contains(t, cfg, "Dinheiro")
	assert.Zero(t, cfg["Dinheiro"])
	assert.Contains(t, cfg, "Cartão de Crédito (12x)")
}

func TestFeeConfigStore_SaveFees_RoundTrip(t *testing.T) {
	settings := newFakeSettings()
	store := NewFeeConfigStore(settings)

	saved := fees.DefaultConfig()
	saved["Cartão de Débito"] = 2
	require.NoError(t, store.SaveFees(context.Background(), saved))

	cfg := store.GetFees(context.Background())
	assert.Equal(t, 2.0, cfg["Cartão de Débito"])
}

func TestFeeConfigStore_SaveFees_RejectsNegativePercentage(t *testing.T) {
	store := NewFeeConfigStore(newFakeSettings())

	err := store.SaveFees(context.Background(), fees.Config{"Pix": -1})

	assert.Error(t, err)
}

func TestFeeConfigStore_SaveFees_PersistErrorSurfaces(t *testing.T) {
	settings := newFakeSettings()
	settings.setErr = errors.New("disk full")
	store := NewFeeConfigStore(settings)

	err := store.SaveFees(context.Background(), fees.Config{"Pix": 1})

	assert.Error(t, err)
}
