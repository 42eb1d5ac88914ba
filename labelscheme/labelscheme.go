package labelscheme

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

// Scheme describes a labeling taxonomy: which values an image may be labeled
// with, and how submitted form input maps to a canonical label string. The
// empty string always means "not yet labeled".
type Scheme interface {
	// Kind names the scheme ("class" or "detector")
	Kind() string

	// Default is the value the UI preselects before the user has chosen
	Default() string

	// Validate reports whether value is acceptable for this scheme
	Validate(value string) error

	// Normalize maps a stored or seeded value onto a valid one. Values that
	// do not validate fall back to the scheme's notion of a default.
	Normalize(value string) string

	// ParseForm extracts the canonical label value from submitted form data
	ParseForm(form url.Values) (string, error)
}

// Class is turned into a button in the UI, allowing each image to be labeled
// with one class.
type Class struct {
	Value       string `json:"value"`
	DisplayName string `json:"name"`
}

// ParseLabelFile reads a JSON label definition of the form
// {"Labels": [{"name": "Label 1", "value": "l1"}]}.
func ParseLabelFile(input io.Reader) ([]Class, error) {
	z := struct {
		Labels []Class
	}{}

	err := json.NewDecoder(input).Decode(&z)

	return z.Labels, err
}

// ClassScheme labels each image with exactly one class from a fixed list.
type ClassScheme struct {
	classes      []Class
	defaultValue string
}

// NewClassScheme builds a scheme over the given classes. If defaultValue is
// empty, the first class is the default. The default must be one of the
// classes.
func NewClassScheme(classes []Class, defaultValue string) (*ClassScheme, error) {
	if len(classes) < 1 {
		return nil, fmt.Errorf("a class scheme needs at least one class")
	}

	s := &ClassScheme{classes: classes, defaultValue: defaultValue}

	if s.defaultValue == "" {
		s.defaultValue = classes[0].Value
	}
	if err := s.Validate(s.defaultValue); err != nil {
		return nil, fmt.Errorf("default class %q is not among the defined classes", defaultValue)
	}

	return s, nil
}

// Classes lists the scheme's classes in definition order.
func (s *ClassScheme) Classes() []Class {
	return s.classes
}

func (s *ClassScheme) Kind() string {
	return "class"
}

func (s *ClassScheme) Default() string {
	return s.defaultValue
}

func (s *ClassScheme) Validate(value string) error {
	for _, c := range s.classes {
		if c.Value == value {
			return nil
		}
	}

	return fmt.Errorf("%q is not among the defined classes", value)
}

// Normalize maps any value outside the class list onto the default class.
// The empty (unlabeled) value is preserved.
func (s *ClassScheme) Normalize(value string) string {
	if value == "" {
		return ""
	}
	if err := s.Validate(value); err != nil {
		return s.defaultValue
	}

	return value
}

func (s *ClassScheme) ParseForm(form url.Values) (string, error) {
	value := form.Get("value")
	if err := s.Validate(value); err != nil {
		return "", err
	}

	return value, nil
}
