package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/create_and_edit.yaml")
	require.NoError(t, err)

	assert.Equal(t, "create_and_edit", scenario.Name)
	require.Len(t, scenario.Steps, 4)
	assert.Equal(t, OpSubmit, scenario.Steps[0].Op)
	assert.Equal(t, "a@x.com", scenario.Steps[0].Email)
	assert.Equal(t, "Ana", scenario.Steps[2].Target)
	require.Len(t, scenario.Assertions, 4)
	assert.Equal(t, []string{"Ana B.", "Bruno"}, scenario.Assertions[0].Names)
}

func TestLoadScenario_Setup(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/delete_while_editing.yaml")
	require.NoError(t, err)

	require.Len(t, scenario.Setup, 2)
	assert.Equal(t, ContactFields{Name: "Ana", Phone: "111", Email: "a@x.com"}, scenario.Setup[0])
	assert.Equal(t, int64(999), scenario.Steps[4].ID)
	assert.Equal(t, "not_found", scenario.Steps[4].Expect)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nstep: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: y\nsteps: [{op: cancel_edit}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsteps: [{op: cancel_edit}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: x\ndescription: y\n",
			wantErr: "steps list is required",
		},
		{
			name:    "unknown op",
			yaml:    "name: x\ndescription: y\nsteps: [{op: rename}]\n",
			wantErr: `unknown op "rename"`,
		},
		{
			name:    "delete without target",
			yaml:    "name: x\ndescription: y\nsteps: [{op: delete}]\n",
			wantErr: "delete requires target or id",
		},
		{
			name:    "contains without contact",
			yaml:    "name: x\ndescription: y\nsteps: [{op: cancel_edit}]\nassertions: [{type: contains}]\n",
			wantErr: "contains requires contact",
		},
		{
			name:    "bad mode",
			yaml:    "name: x\ndescription: y\nsteps: [{op: cancel_edit}]\nassertions: [{type: mode, mode: saving}]\n",
			wantErr: `unknown mode "saving"`,
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ndescription: y\nsteps: [{op: cancel_edit}]\nassertions: [{type: trace_count}]\n",
			wantErr: `unknown type "trace_count"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_FromTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\ndescription: y\nsteps:\n  - op: cancel_edit\n"), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, OpCancelEdit, scenario.Steps[0].Op)
	assert.Empty(t, scenario.Assertions)
}
