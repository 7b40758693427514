package hcl

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHCL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		// --- Arrange ---
		dir := t.TempDir()
		writeHCL(t, dir, "a_settings.hcl", `
settings {
  pool_capacity = 4
  algorithm     = "hlbs"
}
`)
		writeHCL(t, dir, "b_reactors.hcl", `
reactor "timer" {
  tid               = 1000
  weight            = 2 * ms
  period            = 100 * ms
  relative_deadline = 80 * ms
  publishes         = ["t0"]
}

reactor "worker" {
  tid        = 1001
  weight     = 1500 * us
  subscribes = ["t0"]
}
`)

		// --- Act ---
		model, err := NewLoader().Load(context.Background(), dir)

		// --- Assert ---
		require.NoError(t, err)
		want := &config.Model{
			Settings: config.Settings{PoolCapacity: 4, Algorithm: "hlbs"},
			Reactors: []*config.Reactor{
				{
					Name:             "timer",
					TID:              1000,
					Weight:           2_000_000,
					Period:           100_000_000,
					RelativeDeadline: 80_000_000,
					Publishes:        []string{"t0"},
				},
				{
					Name:             "worker",
					TID:              1001,
					Weight:           1_500_000,
					Period:           -1,
					RelativeDeadline: -1,
					Subscribes:       []string{"t0"},
				},
			},
		}
		assert.Empty(t, cmp.Diff(want, model))
	})

	t.Run("missing path", func(t *testing.T) {
		model, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.Nil(t, model)
	})

	errorCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: "reactor \"a\" {\n  tid = 1\n",
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown attribute",
			content: "reactor \"a\" {\n  tid = 1\n  weight = 1\n  color = \"red\"\n}\n",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown variable",
			content: "reactor \"a\" {\n  tid = 1\n  weight = 3 * hours\n}\n",
			wantErr: `reactor "a": failed to evaluate weight`,
		},
		{
			name:    "fractional weight",
			content: "reactor \"a\" {\n  tid = 1\n  weight = 1.5\n}\n",
			wantErr: `reactor "a": failed to evaluate weight`,
		},
		{
			name:    "null weight",
			content: "reactor \"a\" {\n  tid = 1\n  weight = null\n}\n",
			wantErr: `reactor "a": weight must not be null`,
		},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeHCL(t, t.TempDir(), "main.hcl", tc.content)

			_, err := NewLoader().Load(context.Background(), path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEvalInt64(t *testing.T) {
	v, ok, err := evalInt64(nil, newEvalContext())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, v)
}
