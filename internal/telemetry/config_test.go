package telemetry

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/home/u/.horizon")

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.NeedsConsent())
	assert.Len(t, cfg.AnonymousID, 36)
}

func TestStore_SaveAndLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewStore(fsys, "/home/u/.horizon")

	cfg := &Config{AnonymousID: "fixed-id"}
	cfg.Enable()
	require.NoError(t, s.Save(cfg))

	info, err := fsys.Stat("/home/u/.horizon/telemetry.json")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.IsEnabled())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/h/telemetry.json", []byte("{not json"), 0o600))

	_, err := NewStore(fsys, "/h").Load()
	assert.Error(t, err)
}

func TestStore_LoadFillsMissingAnonymousID(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/h/telemetry.json", []byte(`{"enabled":true,"consent_asked":true}`), 0o600))

	cfg, err := NewStore(fsys, "/h").Load()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.NotEmpty(t, cfg.AnonymousID)
}

func TestConfig_EnableDisable(t *testing.T) {
	cfg := &Config{}
	assert.True(t, cfg.NeedsConsent())

	cfg.Enable()
	assert.True(t, cfg.IsEnabled())
	assert.False(t, cfg.NeedsConsent())

	cfg.Disable()
	assert.False(t, cfg.IsEnabled())
	assert.False(t, cfg.NeedsConsent())

	var nilCfg *Config
	assert.False(t, nilCfg.IsEnabled())
}
