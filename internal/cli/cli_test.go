package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/ruth561/DAG-BPF/internal/dag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticLoader returns the same model for every call.
type staticLoader struct {
	model *config.Model
	err   error
	paths []string
}

func (l *staticLoader) Load(_ context.Context, paths ...string) (*config.Model, error) {
	l.paths = append(l.paths, paths...)
	if l.err != nil {
		return nil, l.err
	}
	return l.model, nil
}

func twoNodeModel() *config.Model {
	return &config.Model{
		Reactors: []*config.Reactor{
			{Name: "a", TID: 1, Weight: 2, Period: 10, RelativeDeadline: 10, Publishes: []string{"t"}},
			{Name: "b", TID: 2, Weight: 3, Period: -1, RelativeDeadline: -1, Subscribes: []string{"t"}},
		},
	}
}

func execute(t *testing.T, loader config.Loader, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := Execute(context.Background(), args, out, errOut, loader)
	return out.String(), errOut.String(), err
}

func TestExecute_Run(t *testing.T) {
	loader := &staticLoader{model: twoNodeModel()}

	out, _, err := execute(t, loader, "run", "--algorithm", "hlbs", "--now", "100", "a.hcl", "b.yaml")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.hcl", "b.yaml"}, loader.paths)
	assert.Contains(t, out, "deadline=110")
	assert.Contains(t, out, "node[0]: tid=1, weight=2, prio=105")
	assert.Contains(t, out, "global max: unit=0 tid=1 priority=5")
}

func TestExecute_Check(t *testing.T) {
	out, _, err := execute(t, &staticLoader{model: twoNodeModel()}, "check", "--log-format", "json", "x.hcl")

	require.NoError(t, err)
	assert.Equal(t, "dag task 0: 2 nodes, 1 edges, relative_deadline=10 period=10\n", out)
}

func TestExecute_Help(t *testing.T) {
	out, _, err := execute(t, &staticLoader{}, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "check")
}

func TestExecute_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		loader   *staticLoader
		wantCode int
		wantMsg  string
	}{
		{
			name:     "unknown flag",
			args:     []string{"run", "--this-is-not-a-valid-flag", "x.hcl"},
			wantCode: 2,
			wantMsg:  "unknown flag: --this-is-not-a-valid-flag",
		},
		{
			name:     "missing path",
			args:     []string{"run"},
			wantCode: 2,
			wantMsg:  "run requires at least one",
		},
		{
			name:     "bad log format",
			args:     []string{"run", "--log-format", "xml", "x.hcl"},
			wantCode: 2,
			wantMsg:  "invalid log-format",
		},
		{
			name:     "bad log level",
			args:     []string{"check", "--log-level", "loud", "x.hcl"},
			wantCode: 2,
			wantMsg:  "invalid log-level",
		},
		{
			name:     "bad algorithm",
			args:     []string{"run", "--algorithm", "edf", "x.hcl"},
			wantCode: 2,
			wantMsg:  "unknown priority algorithm",
		},
		{
			name:     "loader failure",
			args:     []string{"run", "x.hcl"},
			loader:   &staticLoader{err: errors.New("boom")},
			wantCode: 1,
			wantMsg:  "failed to load configuration: boom",
		},
		{
			name:     "dag violation",
			args:     []string{"run", "--pool-capacity", "1", "x.hcl"},
			loader:   &staticLoader{model: &config.Model{Reactors: []*config.Reactor{{Name: "a", TID: 1, Weight: -1, RelativeDeadline: 5}}}},
			wantCode: 1,
			wantMsg:  dag.ErrNegativeWeight.Error(),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader := tc.loader
			if loader == nil {
				loader = &staticLoader{model: twoNodeModel()}
			}

			_, _, err := execute(t, loader, tc.args...)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tc.wantCode, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestExecute_RealFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.yaml")
	require.NoError(t, os.WriteFile(path, []byte("directed: true\nmultigraph: false\nnodes:\n  - {id: 0, execution_time: 1, period: 4}\nlinks: []\n"), 0o600))
	loader := config.NewMultiLoader().Register(&staticLoader{model: &config.Model{}}, ".hcl")

	_, _, err := execute(t, loader, "check", path)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "no loader for file extension")
}
