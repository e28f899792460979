package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/fjscene/pkg/errors"
)

func TestLazyCreation(t *testing.T) {
	root := t.TempDir()
	w := New(root, nil)

	if w.Created() {
		t.Fatal("Created() = true before Dir()")
	}
	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Fatalf("root has %d entries before Dir(), want 0", len(entries))
	}

	dir, err := w.Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(dir), pattern) {
		t.Errorf("Dir() = %q, want prefix %q", dir, pattern)
	}
	if filepath.Dir(dir) != root {
		t.Errorf("Dir() parent = %q, want %q", filepath.Dir(dir), root)
	}

	again, err := w.Dir()
	if err != nil {
		t.Fatalf("second Dir() error: %v", err)
	}
	if again != dir {
		t.Errorf("second Dir() = %q, want %q", again, dir)
	}
	entries, _ = os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("root has %d entries, want exactly 1 workspace", len(entries))
	}
}

func TestCloseRemovesOnce(t *testing.T) {
	w := New(t.TempDir(), nil)
	dir, err := w.Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x_sky.mip"), []byte("mip"), 0644); err != nil {
		t.Fatal(err)
	}

	warn, err := w.Close()
	if err != nil || warn != nil {
		t.Fatalf("Close() = %v, %v; want nil, nil", warn, err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("workspace %s still exists after Close()", dir)
	}

	warn, err = w.Close()
	if err != nil || warn != nil {
		t.Errorf("second Close() = %v, %v; want nil, nil", warn, err)
	}
}

func TestCloseNeverCreated(t *testing.T) {
	w := New(t.TempDir(), nil)
	warn, err := w.Close()
	if err != nil || warn != nil {
		t.Errorf("Close() = %v, %v; want nil, nil", warn, err)
	}
}

func TestCloseAlreadyRemoved(t *testing.T) {
	w := New(t.TempDir(), nil)
	dir, err := w.Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	warn, err := w.Close()
	if err != nil {
		t.Fatalf("Close() error = %v, want nil", err)
	}
	if warn == nil || warn.Code != errors.ErrCodeWorkspaceTeardown {
		t.Errorf("Close() warning = %v, want %s", warn, errors.ErrCodeWorkspaceTeardown)
	}
}

func TestDirAfterClose(t *testing.T) {
	w := New(t.TempDir(), nil)
	if _, err := w.Dir(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Dir(); !errors.Is(err, errors.ErrCodeWorkspace) {
		t.Errorf("Dir() after Close() error = %v, want %s", err, errors.ErrCodeWorkspace)
	}
}

func TestDirCreateFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")
	w := New(missing, nil)
	if _, err := w.Dir(); !errors.Is(err, errors.ErrCodeWorkspace) {
		t.Errorf("Dir() error = %v, want %s", err, errors.ErrCodeWorkspace)
	}
	if w.Created() {
		t.Error("Created() = true after failed Dir()")
	}
}
