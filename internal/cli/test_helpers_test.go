package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/baaaaaaaka/histpick/internal/config"
)

// isolateEnv clears every variable that feeds settings resolution and
// points the config file into a temp dir.
func isolateEnv(t *testing.T) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(config.EnvConfigPath, cfgPath)
	t.Setenv("HISTFILE", "")
	t.Setenv(envDecoder, "")
	t.Setenv(envEncoding, "")
	t.Setenv(envLossy, "")
	return cfgPath
}

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".zsh_history")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write history: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
