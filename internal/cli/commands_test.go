package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func newTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "agenda.db")
}

func execute(t *testing.T, db, stdin string, args ...string) result {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", db}, args...))

	err := cmd.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

type contactsResponse struct {
	Status  string          `json:"status"`
	Data    ContactsPayload `json:"data"`
	Error   *CLIError       `json:"error"`
	TraceID string          `json:"trace_id"`
}

func decodeContacts(t *testing.T, out string) contactsResponse {
	t.Helper()
	var resp contactsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func TestAddAndList(t *testing.T) {
	db := newTestDB(t)

	r := execute(t, db, "", "add", "Bruno", "222")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Contact added.")

	r = execute(t, db, "", "add", "  Ana  ", "111", "a@x.com")
	require.NoError(t, r.err)

	r = execute(t, db, "", "list")
	require.NoError(t, r.err)
	assert.Less(t, strings.Index(r.stdout, "Ana"), strings.Index(r.stdout, "Bruno"))
	assert.Contains(t, r.stdout, "a@x.com")
}

func TestAddJSON(t *testing.T) {
	db := newTestDB(t)

	r := execute(t, db, "", "--format", "json", "add", "Ana", "111")
	require.NoError(t, r.err)

	resp := decodeContacts(t, r.stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "Contact added.", resp.Data.Message)
	require.Len(t, resp.Data.Contacts, 1)
	assert.Equal(t, int64(1), resp.Data.Contacts[0].ID)
	assert.Equal(t, "Ana", resp.Data.Contacts[0].Name)
}

func TestAddValidation(t *testing.T) {
	db := newTestDB(t)

	r := execute(t, db, "", "add", "Ana", "   ")
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.True(t, IsReported(r.err))
	assert.Contains(t, r.stdout, "Error [E010]")
	assert.Contains(t, r.stdout, "phone required")

	r = execute(t, db, "", "--format", "json", "list")
	require.NoError(t, r.err)
	assert.Empty(t, decodeContacts(t, r.stdout).Data.Contacts)
}

func TestAddArgCount(t *testing.T) {
	r := execute(t, newTestDB(t), "", "add", "Ana")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "accepts between 2 and 3 arg")
}

func TestListEmpty(t *testing.T) {
	r := execute(t, newTestDB(t), "", "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No contacts.")
}

func TestDatabaseUnavailable(t *testing.T) {
	r := execute(t, "/nonexistent/dir/agenda.db", "", "list")
	require.Error(t, r.err)
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
	assert.Contains(t, r.stdout, "Error [E020]")
}

func TestEdit(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, execute(t, db, "", "add", "Ana", "111", "a@x.com").err)
	require.NoError(t, execute(t, db, "", "add", "Bruno", "222").err)

	r := execute(t, db, "", "--format", "json", "edit", "1", "--name", "Carla", "--email", "")
	require.NoError(t, r.err)

	resp := decodeContacts(t, r.stdout)
	assert.Equal(t, "Contact updated.", resp.Data.Message)
	require.Len(t, resp.Data.Contacts, 2)
	assert.Equal(t, "Bruno", resp.Data.Contacts[0].Name)

	edited := resp.Data.Contacts[1]
	assert.Equal(t, int64(1), edited.ID)
	assert.Equal(t, "Carla", edited.Name)
	assert.Equal(t, "111", edited.Phone)
	assert.Empty(t, edited.Email)
}

func TestEditErrors(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, execute(t, db, "", "add", "Ana", "111").err)

	tests := []struct {
		name     string
		args     []string
		wantCode string
		wantExit int
	}{
		{"no flags", []string{"edit", "1"}, ErrCodeInvalidArgs, ExitCommandError},
		{"bad id", []string{"edit", "abc", "--name", "X"}, ErrCodeInvalidArgs, ExitCommandError},
		{"zero id", []string{"edit", "0", "--name", "X"}, ErrCodeInvalidArgs, ExitCommandError},
		{"unknown id", []string{"edit", "99", "--name", "X"}, ErrCodeNotFound, ExitFailure},
		{"blank name", []string{"edit", "1", "--name", " "}, ErrCodeValidation, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, db, "", append([]string{"--format", "json"}, tt.args...)...)
			require.Error(t, r.err)
			assert.Equal(t, tt.wantExit, GetExitCode(r.err))

			resp := decodeContacts(t, r.stdout)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}

	r := execute(t, db, "", "--format", "json", "list")
	require.NoError(t, r.err)
	contacts := decodeContacts(t, r.stdout).Data.Contacts
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ana", contacts[0].Name)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, execute(t, db, "", "add", "Ana", "111").err)
	require.NoError(t, execute(t, db, "", "add", "Bruno", "222").err)

	r := execute(t, db, "", "--format", "json", "delete", "1", "--yes")
	require.NoError(t, r.err)

	resp := decodeContacts(t, r.stdout)
	assert.Equal(t, "Contact deleted.", resp.Data.Message)
	require.Len(t, resp.Data.Contacts, 1)
	assert.Equal(t, "Bruno", resp.Data.Contacts[0].Name)
}

func TestDeleteConfirmation(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, execute(t, db, "", "add", "Ana", "111").err)

	r := execute(t, db, "n\n", "delete", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Delete contact Ana (111)? [y/N]")
	assert.Contains(t, r.stderr, "Delete cancelled.")

	r = execute(t, db, "", "delete", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Delete cancelled.")

	r = execute(t, db, "y\n", "delete", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Contact deleted.")
	assert.Contains(t, r.stdout, "No contacts.")
}

func TestDeleteUnknown(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, execute(t, db, "", "add", "Ana", "111").err)

	for _, args := range [][]string{{"delete", "99", "--yes"}, {"delete", "99"}} {
		r := execute(t, db, "y\n", args...)
		require.Error(t, r.err)
		assert.Equal(t, ExitFailure, GetExitCode(r.err))
		assert.Contains(t, r.stdout, "Error [E011]")
	}
}

func TestImport(t *testing.T) {
	db := newTestDB(t)
	path := filepath.Join(t.TempDir(), "contacts.yaml")
	doc := `contacts:
  - name: Bruno
    phone: "222"
  - name: "  "
    phone: "000"
  - name: Ana
    phone: "111"
    email: a@x.com
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	r := execute(t, db, "", "--format", "json", "import", path)
	require.NoError(t, r.err)

	var resp struct {
		Status string        `json:"status"`
		Data   ImportPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &resp))
	assert.Equal(t, 2, resp.Data.Imported)
	require.Len(t, resp.Data.Rejected, 1)
	assert.Contains(t, resp.Data.Rejected[0], "contact 1")
	require.Len(t, resp.Data.Contacts, 2)
	assert.Equal(t, "Ana", resp.Data.Contacts[0].Name)
	assert.Equal(t, "Imported 2 contact(s), 1 rejected.", resp.Data.Message)
}

func TestImportSchemaViolation(t *testing.T) {
	db := newTestDB(t)
	path := filepath.Join(t.TempDir(), "contacts.cue")
	require.NoError(t, os.WriteFile(path, []byte(`contacts: [{name: "Ana"}]`), 0644))

	r := execute(t, db, "", "import", path)
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.Contains(t, r.stdout, "Error [E030]")

	r = execute(t, db, "", "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No contacts.")
}

func TestImportMissingFile(t *testing.T) {
	r := execute(t, newTestDB(t), "", "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, r.err)
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
	assert.Contains(t, r.stdout, "Error [E002]")
}
