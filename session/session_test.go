package session

import (
	"fmt"
	"image"
	"testing"

	"github.com/openimaging/labeler/imageset"
	"github.com/openimaging/labeler/labelscheme"
)

func testSet(n int) imageset.ImageSet {
	set := make(imageset.ImageSet, 0, n)
	for i := 0; i < n; i++ {
		set = append(set, imageset.Item{
			Name:  fmt.Sprintf("img%d.png", i),
			Image: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		})
	}

	return set
}

func testScheme(t *testing.T) labelscheme.Scheme {
	t.Helper()

	s, err := labelscheme.NewClassScheme([]labelscheme.Class{
		{Value: "cat", DisplayName: "Cat"},
		{Value: "dog", DisplayName: "Dog"},
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestSetLabel(t *testing.T) {
	s, err := New(testSet(3), testScheme(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetLabel(1, "dog"); err != nil {
		t.Fatal(err)
	}

	if got := s.Label(1); got != "dog" {
		t.Errorf("Expected dog, got %q", got)
	}
	if !s.Seen(1) {
		t.Error("Labeling an image should mark it seen")
	}
	if s.Seen(0) || s.Seen(2) {
		t.Error("Unvisited images should not be seen")
	}

	if err := s.SetLabel(1, "bird"); err == nil {
		t.Error("Expected an error for a value the scheme rejects")
	}
	if err := s.SetLabel(7, "cat"); err == nil {
		t.Error("Expected an error for an out-of-range index")
	}
}

func TestAutoAdvance(t *testing.T) {
	s, err := New(testSet(3), testScheme(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetLabel(0, "cat"); err != nil {
		t.Fatal(err)
	}
	if s.Cursor() != 1 {
		t.Errorf("Expected cursor 1 after auto-advance, got %d", s.Cursor())
	}

	// Labeling the last image never advances past the end
	if err := s.SetLabel(2, "cat"); err != nil {
		t.Fatal(err)
	}
	if s.Cursor() != 2 {
		t.Errorf("Expected cursor 2 at the end, got %d", s.Cursor())
	}
}

func TestNoAutoAdvance(t *testing.T) {
	s, err := New(testSet(3), testScheme(t), WithAutoAdvance(false))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetLabel(0, "cat"); err != nil {
		t.Fatal(err)
	}
	if s.Cursor() != 0 {
		t.Errorf("Expected cursor to stay at 0, got %d", s.Cursor())
	}
}

func TestNavigation(t *testing.T) {
	s, err := New(testSet(2), testScheme(t))
	if err != nil {
		t.Fatal(err)
	}

	if got := s.Prev(); got != 0 {
		t.Errorf("Prev at the start should stay at 0, got %d", got)
	}
	if got := s.Next(); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
	if got := s.Next(); got != 1 {
		t.Errorf("Next at the end should stay at 1, got %d", got)
	}

	if got := s.Progress(); got != "2 / 2" {
		t.Errorf("Expected progress 2 / 2, got %q", got)
	}
}

func TestAllSeen(t *testing.T) {
	s, err := New(testSet(2), testScheme(t))
	if err != nil {
		t.Fatal(err)
	}

	if s.AllSeen() {
		t.Error("A fresh session should not be all seen")
	}

	s.MarkSeen(0)
	s.MarkSeen(1)

	if !s.AllSeen() {
		t.Error("Expected all seen after marking every image")
	}
}

func TestDefaults(t *testing.T) {
	set := testSet(3)

	if _, err := New(set, testScheme(t), WithDefaults([]string{"cat"})); err == nil {
		t.Error("Expected an error for a defaults length mismatch")
	}

	s, err := New(set, testScheme(t), WithDefaults([]string{"dog", "bird", ""}))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"dog", "cat", ""}
	for i, w := range want {
		if got := s.Label(i); got != w {
			t.Errorf("Label %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestLabelsSnapshot(t *testing.T) {
	s, err := New(testSet(2), testScheme(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetLabel(0, "cat"); err != nil {
		t.Fatal(err)
	}

	labels := s.Labels()
	labels[1] = "tampered"

	if got := s.Label(1); got != "" {
		t.Errorf("Snapshot mutation leaked into the session: %q", got)
	}
	if s.LabeledCount() != 1 {
		t.Errorf("Expected 1 labeled image, got %d", s.LabeledCount())
	}
}

func TestEmptySession(t *testing.T) {
	s, err := New(imageset.ImageSet{}, testScheme(t))
	if err != nil {
		t.Fatal(err)
	}

	if !s.AllSeen() {
		t.Error("An empty session is vacuously all seen")
	}
	if got := s.Progress(); got != "0 / 0" {
		t.Errorf("Expected 0 / 0, got %q", got)
	}
	if got := s.Next(); got != 0 {
		t.Errorf("Expected cursor to stay at 0, got %d", got)
	}
}
