package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenOrCreateAnnotationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.tsv")

	annotations, err := OpenOrCreateAnnotationFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(annotations) != 0 {
		t.Errorf("Expected no prior annotations, got %d", len(annotations))
	}

	// The file (and its directory) should now exist
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}

func TestWriteAndResume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	set := testSet(3)
	scheme := testScheme(t)

	s, err := New(set, scheme, WithAnnotationFile(path))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetLabel(1, "dog"); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteAnnotationsToDisk("/imgs"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected a header plus one labeled row, got %d lines", len(lines))
	}
	if lines[0] != "image\tvalue\tdate\tpath" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "img1.png\tdog\t") || !strings.HasSuffix(lines[1], "\t/imgs") {
		t.Errorf("Unexpected row %q", lines[1])
	}

	// A new session over the same output resumes the prior label
	s2, err := New(set, scheme, WithAnnotationFile(path))
	if err != nil {
		t.Fatal(err)
	}
	if got := s2.Label(1); got != "dog" {
		t.Errorf("Expected resumed label dog, got %q", got)
	}
	if got := s2.Label(0); got != "" {
		t.Errorf("Expected img0 to stay unlabeled, got %q", got)
	}
}

func TestPriorsOverrideDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	set := testSet(2)
	scheme := testScheme(t)

	s, err := New(set, scheme, WithAnnotationFile(path))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetLabel(0, "dog"); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteAnnotationsToDisk(""); err != nil {
		t.Fatal(err)
	}

	s2, err := New(set, scheme, WithAnnotationFile(path), WithDefaults([]string{"cat", "cat"}))
	if err != nil {
		t.Fatal(err)
	}
	if got := s2.Label(0); got != "dog" {
		t.Errorf("Expected the stored label to win over the default, got %q", got)
	}
	if got := s2.Label(1); got != "cat" {
		t.Errorf("Expected the default for the unstored image, got %q", got)
	}
}

func TestWriteWithoutAnnotationFile(t *testing.T) {
	s, err := New(testSet(1), testScheme(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.WriteAnnotationsToDisk(""); err == nil {
		t.Error("Expected an error when no annotation file is configured")
	}
}
