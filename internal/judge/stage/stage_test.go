package stage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStageWritesSourceWithCanonicalExtension(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(dir)

	staged, err := s.Stage("int main(){}", "cpp")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if !strings.HasSuffix(staged.Path, ".cpp") {
		t.Fatalf("expected .cpp extension, got %s", staged.Path)
	}
	if filepath.Dir(staged.Path) != dir {
		t.Fatalf("expected staged path under %s, got %s", dir, staged.Path)
	}

	contents, err := os.ReadFile(staged.Path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(contents) != "int main(){}" {
		t.Fatalf("unexpected staged contents: %q", contents)
	}
}

func TestStageUnsupportedLanguage(t *testing.T) {
	s := NewStager(t.TempDir())
	if _, err := s.Stage("whatever", "cobol"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
}

func TestStageIDsAreUnique(t *testing.T) {
	s := NewStager(t.TempDir())
	first, err := s.Stage("a", "c")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	second, err := s.Stage("b", "c")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct submission ids, got %s twice", first.ID)
	}
}

func TestCleanupRemovesStagedFile(t *testing.T) {
	s := NewStager(t.TempDir())
	staged, err := s.Stage("a", "c")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := staged.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(staged.Path); !os.IsNotExist(err) {
		t.Fatalf("expected staged file to be removed")
	}
}
