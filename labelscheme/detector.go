package labelscheme

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxCount caps each detector validation count per image.
const MaxCount = 100

// ValResult counts a detector's true positives, false positives, and false
// negatives on one image. Its canonical string form is "tp:fp:fn".
type ValResult struct {
	TP int
	FP int
	FN int
}

func (v ValResult) String() string {
	return fmt.Sprintf("%d:%d:%d", v.TP, v.FP, v.FN)
}

// Valid checks that each count is within [0, MaxCount].
func (v ValResult) Valid() error {
	for _, c := range []int{v.TP, v.FP, v.FN} {
		if c < 0 || c > MaxCount {
			return fmt.Errorf("counts must be between 0 and %d, got %s", MaxCount, v)
		}
	}

	return nil
}

// ParseValResult parses the "tp:fp:fn" form produced by ValResult.String.
func ParseValResult(s string) (ValResult, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return ValResult{}, fmt.Errorf("expected tp:fp:fn, got %q", s)
	}

	counts := make([]int, 3)
	for i, p := range parts {
		c, err := strconv.Atoi(p)
		if err != nil {
			return ValResult{}, fmt.Errorf("expected tp:fp:fn, got %q", s)
		}
		counts[i] = c
	}

	out := ValResult{TP: counts[0], FP: counts[1], FN: counts[2]}

	return out, out.Valid()
}

// DetectorScheme labels each image with the validation counts for a detector:
// how many detections were true positives, false positives, and false
// negatives.
type DetectorScheme struct{}

func (DetectorScheme) Kind() string {
	return "detector"
}

// Default is the zero count triple, matching a fresh validation form.
func (DetectorScheme) Default() string {
	return ValResult{}.String()
}

func (DetectorScheme) Validate(value string) error {
	_, err := ParseValResult(value)

	return err
}

// Normalize preserves valid triples and the unlabeled value; anything else
// falls back to unlabeled rather than inventing counts.
func (DetectorScheme) Normalize(value string) string {
	if value == "" {
		return ""
	}
	if _, err := ParseValResult(value); err != nil {
		return ""
	}

	return value
}

// ParseForm reads the tp, fp, and fn fields of a submitted validation form.
func (DetectorScheme) ParseForm(form url.Values) (string, error) {
	out := ValResult{}

	for _, field := range []struct {
		name string
		dest *int
	}{
		{"tp", &out.TP},
		{"fp", &out.FP},
		{"fn", &out.FN},
	} {
		raw := form.Get(field.name)
		if raw == "" {
			raw = "0"
		}

		c, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("field %s: %q is not a whole number", field.name, raw)
		}
		*field.dest = c
	}

	if err := out.Valid(); err != nil {
		return "", err
	}

	return out.String(), nil
}
