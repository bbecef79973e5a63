package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestXDGDirs(t *testing.T) {
	tests := []struct {
		name string
		env  string
		fn   func() (string, error)
	}{
		{"cache", "XDG_CACHE_HOME", cacheDir},
		{"state", "XDG_STATE_HOME", stateDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			custom := filepath.Join(t.TempDir(), "custom")
			t.Setenv(tt.env, custom)

			dir, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if want := filepath.Join(custom, appName); dir != want {
				t.Errorf("got %q, want %q", dir, want)
			}
		})
	}
}

func TestStateDirDefault(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")

	dir, err := stateDir()
	if err != nil {
		t.Fatalf("stateDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".local", "state", appName); dir != want {
		t.Errorf("stateDir() = %q, want %q", dir, want)
	}
}

func TestDefaultLogPath(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	path, err := defaultLogPath()
	if err != nil {
		t.Fatalf("defaultLogPath() error: %v", err)
	}
	if want := filepath.Join(state, appName, logFileName); path != want {
		t.Errorf("defaultLogPath() = %q, want %q", path, want)
	}

	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("openLogFile error: %v", err)
	}
	f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
