package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.NotEmpty(t, cfg.Stages)
	require.Equal(t, 100, cfg.Tunables.Caps.PlayerBullets)
	require.Equal(t, 150, cfg.Tunables.Caps.EnemyBullets)
	require.Equal(t, 60, cfg.Tunables.Caps.Enemies)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, defaultsYAML, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestValidateRejections(t *testing.T) {
	valid := func() Config { return Default() }

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no stages",
			mutate:  func(c *Config) { c.Stages = nil },
			wantErr: "at least one stage",
		},
		{
			name:    "missing stage name",
			mutate:  func(c *Config) { c.Stages[0].Name = "" },
			wantErr: "missing name",
		},
		{
			name:    "duplicate stage name",
			mutate:  func(c *Config) { c.Stages[1].Name = c.Stages[0].Name },
			wantErr: "duplicate name",
		},
		{
			name:    "zero cap",
			mutate:  func(c *Config) { c.Tunables.Caps.Enemies = 0 },
			wantErr: "caps.enemies",
		},
		{
			name:    "unknown enemy type in wave weights",
			mutate:  func(c *Config) { c.Stages[0].Waves[0].Weights["mothership"] = 1 },
			wantErr: `unknown entry "mothership"`,
		},
		{
			name:    "unknown boss pattern",
			mutate:  func(c *Config) { c.Stages[0].Boss.Phases[0].Pattern = "laser" },
			wantErr: `unknown pattern "laser"`,
		},
		{
			name: "unsorted phase table",
			mutate: func(c *Config) {
				c.Stages[0].Boss.Phases[1].HPThreshold = c.Stages[0].Boss.Phases[0].HPThreshold + 5
			},
			wantErr: "not strictly descending",
		},
		{
			name: "duplicate phase threshold",
			mutate: func(c *Config) {
				c.Stages[0].Boss.Phases[1].HPThreshold = c.Stages[0].Boss.Phases[0].HPThreshold
			},
			wantErr: "not strictly descending",
		},
		{
			name:    "empty phase table",
			mutate:  func(c *Config) { c.Stages[0].Boss.Phases = nil },
			wantErr: "phase table is empty",
		},
		{
			name:    "boss enters off screen",
			mutate:  func(c *Config) { c.Stages[0].Boss.EnterY = 9000 },
			wantErr: "enter_y",
		},
		{
			name:    "bonus stage with boss",
			mutate:  func(c *Config) { c.Stages[2].Boss = c.Stages[0].Boss },
			wantErr: "bonus stage cannot carry a boss",
		},
		{
			name:    "zero wave weights",
			mutate:  func(c *Config) { c.Stages[0].Waves[0].Weights = map[string]float64{"grunt": 0} },
			wantErr: "sum to zero",
		},
		{
			name:    "drop chance above one",
			mutate:  func(c *Config) { c.Tunables.Powerups.DropChance = 1.2 },
			wantErr: "drop_chance",
		},
		{
			name:    "decreasing difficulty table",
			mutate:  func(c *Config) { c.Tunables.Difficulty.Multipliers = []float64{1.5, 1.2} },
			wantErr: "non-decreasing",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestUnknownFormationIsNotALoadError(t *testing.T) {
	cfg := Default()
	cfg.Stages[0].Waves[0].Formation = "corkscrew"
	require.NoError(t, cfg.Validate())
}

func TestWatcherReportsTableWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("screen: {width: 1, height: 1}\n"), 0o644))

	select {
	case got := <-w.Events:
		require.Equal(t, path, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for table write")
	}

	// non-table files are filtered out
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}
