package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTally(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	content := "image\tvalue\tdate\tpath\n" +
		"a.png\tgood\t2024-01-01T00:00:00Z\t/imgs\n" +
		"b.png\tbad-image\t2024-01-01T00:00:00Z\t/imgs\n" +
		"c.png\tgood\t2024-01-01T00:00:00Z\t/imgs\n"
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}

	values, counts, err := Tally(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(values) != 2 {
		t.Fatalf("Expected 2 distinct values, got %d", len(values))
	}

	// First-seen order
	if values[0] != "good" || values[1] != "bad-image" {
		t.Errorf("Unexpected value order: %v", values)
	}
	if counts[0] != 2 || counts[1] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
}
