package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestDirs(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("TABDECK_CONFIG_DIR", "")
	t.Setenv("TABDECK_STATE_DIR", "")
	t.Setenv("TABDECK_RUNTIME_DIR", "")
	t.Setenv("HOME", tmp)
	ResetForTest()
	t.Cleanup(ResetForTest)
	return tmp
}

func TestDirs(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		resolve  func() string
		defaults []string
	}{
		{"config", "TABDECK_CONFIG_DIR", ConfigDir, []string{".config", "tabdeck"}},
		{"state", "TABDECK_STATE_DIR", StateDir, []string{".local", "state", "tabdeck"}},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/default", func(t *testing.T) {
			tmp := setupTestDirs(t)
			want := filepath.Join(append([]string{tmp}, tt.defaults...)...)
			if got := tt.resolve(); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
		t.Run(tt.name+"/env override", func(t *testing.T) {
			tmp := setupTestDirs(t)
			override := filepath.Join(tmp, "custom")
			t.Setenv(tt.env, override)
			ResetForTest()
			if got := tt.resolve(); got != override {
				t.Errorf("got %q, want %q", got, override)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	tmp := setupTestDirs(t)
	want := filepath.Join(tmp, ".config", "tabdeck", "config.yaml")
	if got := ConfigPath(); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestSocketAndPidPaths(t *testing.T) {
	tmp := setupTestDirs(t)
	t.Setenv("TABDECK_RUNTIME_DIR", tmp)
	ResetForTest()

	if got, want := SocketPath(""), filepath.Join(tmp, "tabdeck-default.sock"); got != want {
		t.Errorf("SocketPath(\"\") = %q, want %q", got, want)
	}
	if got, want := PidPath("ops"), filepath.Join(tmp, "tabdeck-ops.pid"); got != want {
		t.Errorf("PidPath(ops) = %q, want %q", got, want)
	}
}

func TestEnsureStateDir(t *testing.T) {
	tmp := setupTestDirs(t)
	dir, err := EnsureStateDir()
	if err != nil {
		t.Fatalf("EnsureStateDir() error: %v", err)
	}
	want := filepath.Join(tmp, ".local", "state", "tabdeck")
	if dir != want {
		t.Errorf("EnsureStateDir() = %q, want %q", dir, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("state dir not created: %v", err)
	}
}

func TestCachingReturnsFirstValue(t *testing.T) {
	tmp := setupTestDirs(t)
	first := ConfigDir()
	t.Setenv("TABDECK_CONFIG_DIR", filepath.Join(tmp, "changed"))
	if got := ConfigDir(); got != first {
		t.Errorf("ConfigDir() changed without reset: %q -> %q", first, got)
	}
}
