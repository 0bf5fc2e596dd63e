package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execValidate(t *testing.T, format, path string) (*bytes.Buffer, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	return buf, cmd.Execute()
}

func TestValidateValidPolicy(t *testing.T) {
	buf, err := execValidate(t, "text", "testdata/policy.cue")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Policy valid")
	assert.Contains(t, buf.String(), "2 admin routes")
}

func TestValidateValidPolicyJSON(t *testing.T) {
	buf, err := execValidate(t, "json", "testdata/policy.cue")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateInvalidPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cue")
	body := "policy: inference_rules: [{kind: \"regex\", pattern: \"x\", permission: \"p\"}]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	buf, err := execValidate(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "POLICY_INVALID")
}

func TestValidateMissingFile(t *testing.T) {
	_, err := execValidate(t, "text", "testdata/nope.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
