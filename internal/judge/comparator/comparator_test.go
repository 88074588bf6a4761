package comparator

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCompareIdenticalFiles(t *testing.T) {
	path := writeFile(t, "a.txt", "hello\nworld\n")
	res, err := Compare(path, path)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !res.Consistent {
		t.Fatalf("expected a file to be consistent with itself: %+v", res)
	}
}

func TestCompareTrailingBlankLineTolerated(t *testing.T) {
	left := writeFile(t, "left.txt", "6\n")
	right := writeFile(t, "right.txt", "6\n\n")
	res, err := Compare(left, right)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !res.Consistent {
		t.Fatalf("expected single trailing blank line to be tolerated: %+v", res)
	}
}

func TestCompareExtraNonBlankContentRejected(t *testing.T) {
	left := writeFile(t, "left.txt", "6\n")
	right := writeFile(t, "right.txt", "6\nextra\n")
	res, err := Compare(left, right)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.Consistent {
		t.Fatalf("expected extra non-blank content to be rejected")
	}
	if res.Line != 2 {
		t.Fatalf("expected mismatch at line 2, got %d", res.Line)
	}
}

func TestCompareMismatchReportsLine(t *testing.T) {
	left := writeFile(t, "left.txt", "1\n2\n3\n")
	right := writeFile(t, "right.txt", "1\n9\n3\n")
	res, err := Compare(left, right)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.Consistent {
		t.Fatalf("expected mismatch")
	}
	if res.Line != 2 || res.Left != "2" || res.Right != "9" {
		t.Fatalf("unexpected mismatch detail: %+v", res)
	}
}

func TestCompareNoTrailingNewlineEitherSide(t *testing.T) {
	left := writeFile(t, "left.txt", "6")
	right := writeFile(t, "right.txt", "6")
	res, err := Compare(left, right)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !res.Consistent {
		t.Fatalf("expected match without trailing newline: %+v", res)
	}
}
