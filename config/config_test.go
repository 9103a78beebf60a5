package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/tiledmap/maps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiledmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Config
	}{
		{
			name: "defaults",
			body: "{}\n",
			want: Default(),
		},
		{
			name: "full",
			body: "policy: strict\nworkers: 4\nquiet: true\nwatch_debounce: 250ms\n",
			want: Config{Policy: "strict", Workers: 4, Quiet: true, WatchDebounce: 250 * time.Millisecond},
		},
		{
			name: "partial",
			body: "workers: 2\n",
			want: Config{Policy: "lenient", Workers: 2, WatchDebounce: 100 * time.Millisecond},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, c.body))
			require.NoError(t, err)
			assert.Equal(t, c.want, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad_yaml", "policy: [strict\n"},
		{"bad_policy", "policy: sometimes\n"},
		{"negative_workers", "workers: -1\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	l := maps.NewLoader()
	cfg := Config{Policy: "Strict", Workers: 3, Quiet: true}
	require.NoError(t, cfg.Apply(l))
	assert.Equal(t, maps.Strict, l.Policy)
	assert.Equal(t, 3, l.Workers)
	require.NotNil(t, l.Logger)

	assert.Error(t, Config{Policy: "never"}.Apply(l))
}
