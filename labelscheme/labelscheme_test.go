package labelscheme

import (
	"net/url"
	"strings"
	"testing"
)

func TestParseLabelFile(t *testing.T) {
	input := `{"Labels": [{"name": "Bad Image", "value": "bad-image"}, {"name": "Good", "value": "good"}]}`

	classes, err := ParseLabelFile(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(classes) != 2 {
		t.Fatalf("Expected 2 classes, got %d", len(classes))
	}
	if classes[0].Value != "bad-image" || classes[0].DisplayName != "Bad Image" {
		t.Errorf("Unexpected first class: %+v", classes[0])
	}
}

func newTestScheme(t *testing.T) *ClassScheme {
	t.Helper()

	s, err := NewClassScheme([]Class{
		{Value: "cat", DisplayName: "Cat"},
		{Value: "dog", DisplayName: "Dog"},
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestClassSchemeDefault(t *testing.T) {
	s := newTestScheme(t)

	// First class is the default when none is configured
	if s.Default() != "cat" {
		t.Errorf("Expected default cat, got %s", s.Default())
	}

	s2, err := NewClassScheme(s.Classes(), "dog")
	if err != nil {
		t.Fatal(err)
	}
	if s2.Default() != "dog" {
		t.Errorf("Expected default dog, got %s", s2.Default())
	}

	if _, err := NewClassScheme(s.Classes(), "bird"); err == nil {
		t.Error("Expected an error for a default outside the class list")
	}

	if _, err := NewClassScheme(nil, ""); err == nil {
		t.Error("Expected an error for an empty class list")
	}
}

func TestClassSchemeValidate(t *testing.T) {
	s := newTestScheme(t)

	if err := s.Validate("dog"); err != nil {
		t.Error(err)
	}
	if err := s.Validate("bird"); err == nil {
		t.Error("Expected an error for a value outside the class list")
	}
}

func TestClassSchemeNormalize(t *testing.T) {
	s := newTestScheme(t)

	if got := s.Normalize("dog"); got != "dog" {
		t.Errorf("Expected dog, got %s", got)
	}

	// Unknown values fall back to the default class
	if got := s.Normalize("bird"); got != "cat" {
		t.Errorf("Expected cat, got %s", got)
	}

	// The unlabeled value stays unlabeled
	if got := s.Normalize(""); got != "" {
		t.Errorf("Expected empty, got %s", got)
	}
}

func TestClassSchemeParseForm(t *testing.T) {
	s := newTestScheme(t)

	value, err := s.ParseForm(url.Values{"value": []string{"dog"}})
	if err != nil {
		t.Fatal(err)
	}
	if value != "dog" {
		t.Errorf("Expected dog, got %s", value)
	}

	if _, err := s.ParseForm(url.Values{"value": []string{"bird"}}); err == nil {
		t.Error("Expected an error for a value outside the class list")
	}
}
