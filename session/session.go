package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/openimaging/labeler/imageset"
	"github.com/openimaging/labeler/labelscheme"
)

// Session tracks the labeling state for an ordered set of images: one label
// slot and one seen flag per image, plus a cursor for single-image mode. All
// methods are safe for concurrent use from HTTP handler goroutines.
type Session struct {
	set    imageset.ImageSet
	scheme labelscheme.Scheme

	multiMode      bool
	autoAdvance    bool
	annotationPath string

	m       sync.RWMutex
	entries []Annotation
	seen    []bool
	cursor  int
}

// Option configures a Session at construction time.
type Option func(*options)

type options struct {
	defaults       []string
	multiMode      bool
	autoAdvance    bool
	annotationPath string
}

// WithDefaults seeds the initial labels. Its length must equal the number of
// images. Values the scheme does not accept are normalized (for a class
// scheme, onto the default class).
func WithDefaults(defaults []string) Option {
	return func(o *options) { o.defaults = defaults }
}

// WithMultiMode makes the session present every image at once instead of one
// image at a time.
func WithMultiMode() Option {
	return func(o *options) { o.multiMode = true }
}

// WithAutoAdvance controls whether labeling an image moves the cursor to the
// next one. On by default.
func WithAutoAdvance(on bool) Option {
	return func(o *options) { o.autoAdvance = on }
}

// WithAnnotationFile persists labels to the tab-delimited file at path, and
// resumes from it if it already holds annotations. Labels loaded from the
// file override seeded defaults.
func WithAnnotationFile(path string) Option {
	return func(o *options) { o.annotationPath = path }
}

// New builds a labeling session over the image set.
func New(set imageset.ImageSet, scheme labelscheme.Scheme, opts ...Option) (*Session, error) {
	o := options{autoAdvance: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.defaults != nil && len(o.defaults) != len(set) {
		return nil, fmt.Errorf("got %d default labels for %d images", len(o.defaults), len(set))
	}

	s := &Session{
		set:            set,
		scheme:         scheme,
		multiMode:      o.multiMode,
		autoAdvance:    o.autoAdvance,
		annotationPath: o.annotationPath,
		entries:        make([]Annotation, len(set)),
		seen:           make([]bool, len(set)),
	}

	for i, it := range set {
		s.entries[i].Image = it.Name
		if o.defaults != nil {
			s.entries[i].Value = scheme.Normalize(o.defaults[i])
		}
	}

	if o.annotationPath != "" {
		priors, err := OpenOrCreateAnnotationFile(o.annotationPath)
		if err != nil {
			return nil, err
		}

		for i := range s.entries {
			if prior, exists := priors[s.entries[i].Image]; exists {
				s.entries[i] = prior
			}
		}
	}

	return s, nil
}

// Len reports the number of images in the session.
func (s *Session) Len() int {
	return len(s.set)
}

// MultiMode reports whether every image is presented at once.
func (s *Session) MultiMode() bool {
	return s.multiMode
}

// Scheme is the labeling taxonomy this session collects values for.
func (s *Session) Scheme() labelscheme.Scheme {
	return s.scheme
}

// Item returns the idx'th image of the set.
func (s *Session) Item(idx int) (imageset.Item, error) {
	if idx < 0 || idx >= len(s.set) {
		return imageset.Item{}, fmt.Errorf("image #%d was not found", idx)
	}

	return s.set[idx], nil
}

// SetLabel validates value against the scheme, applies it to the idx'th
// image, and marks that image seen. With auto-advance on, the cursor moves to
// the next image, never past the last one.
func (s *Session) SetLabel(idx int, value string) error {
	if err := s.scheme.Validate(value); err != nil {
		return err
	}

	s.m.Lock()
	defer s.m.Unlock()

	if idx < 0 || len(s.entries)-1 < idx {
		return fmt.Errorf("image #%d was not found", idx)
	}

	chosen := s.entries[idx]
	chosen.Value = value
	chosen.Date = time.Now().Format(time.RFC3339)

	// Make sure the main array gets the values
	s.entries[idx] = chosen
	s.seen[idx] = true

	if s.autoAdvance && idx < len(s.entries)-1 {
		s.cursor = idx + 1
	}

	return nil
}

// Label returns the idx'th image's current label value ("" if unlabeled).
func (s *Session) Label(idx int) string {
	s.m.RLock()
	defer s.m.RUnlock()

	if idx < 0 || idx >= len(s.entries) {
		return ""
	}

	return s.entries[idx].Value
}

// Labels returns an ordered snapshot of every label value.
func (s *Session) Labels() []string {
	s.m.RLock()
	defer s.m.RUnlock()

	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Value
	}

	return out
}

// Entries returns an ordered snapshot of the session's annotations.
func (s *Session) Entries() []Annotation {
	s.m.RLock()
	defer s.m.RUnlock()

	out := make([]Annotation, len(s.entries))
	copy(out, s.entries)

	return out
}

// MarkSeen records that the idx'th image has been presented to the user.
func (s *Session) MarkSeen(idx int) {
	s.m.Lock()
	defer s.m.Unlock()

	if idx >= 0 && idx < len(s.seen) {
		s.seen[idx] = true
	}
}

// Seen reports whether the idx'th image has been presented.
func (s *Session) Seen(idx int) bool {
	s.m.RLock()
	defer s.m.RUnlock()

	if idx < 0 || idx >= len(s.seen) {
		return false
	}

	return s.seen[idx]
}

// AllSeen reports whether every image has been presented at least once.
func (s *Session) AllSeen() bool {
	s.m.RLock()
	defer s.m.RUnlock()

	for _, seen := range s.seen {
		if !seen {
			return false
		}
	}

	return true
}

// Cursor is the index of the image currently presented in single-image mode.
func (s *Session) Cursor() int {
	s.m.RLock()
	defer s.m.RUnlock()

	return s.cursor
}

// SetCursor jumps to the given image, clamped to the set's bounds.
func (s *Session) SetCursor(idx int) {
	s.m.Lock()
	defer s.m.Unlock()

	s.cursor = s.clamp(idx)
}

// Next advances the cursor by one image and returns the new index.
func (s *Session) Next() int {
	s.m.Lock()
	defer s.m.Unlock()

	s.cursor = s.clamp(s.cursor + 1)

	return s.cursor
}

// Prev moves the cursor back by one image and returns the new index.
func (s *Session) Prev() int {
	s.m.Lock()
	defer s.m.Unlock()

	s.cursor = s.clamp(s.cursor - 1)

	return s.cursor
}

func (s *Session) clamp(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx > len(s.entries)-1 && len(s.entries) > 0 {
		return len(s.entries) - 1
	}
	if len(s.entries) == 0 {
		return 0
	}

	return idx
}

// Progress renders the 1-based position of the cursor, e.g. "3 / 7".
func (s *Session) Progress() string {
	s.m.RLock()
	defer s.m.RUnlock()

	if len(s.entries) == 0 {
		return "0 / 0"
	}

	return fmt.Sprintf("%d / %d", s.cursor+1, len(s.entries))
}

// LabeledCount reports how many images carry a non-empty label.
func (s *Session) LabeledCount() int {
	s.m.RLock()
	defer s.m.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.Value != "" {
			n++
		}
	}

	return n
}

// WriteAnnotationsToDisk rewrites the annotation file from the current
// state. Unlabeled images are omitted. imageRoot is recorded in the path
// column for entries that do not already carry one.
func (s *Session) WriteAnnotationsToDisk(imageRoot string) error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.annotationPath == "" {
		return fmt.Errorf("this session was not configured with an annotation file")
	}

	f, err := os.OpenFile(s.annotationPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "image\tvalue\tdate\tpath\n")
	for _, v := range s.entries {
		if v.Value == "" {
			continue
		}

		if v.Path == "" {
			v.Path = imageRoot
		}

		fmt.Fprintf(f, "%s\t%s\t%s\t%s\n", v.Image, v.Value, v.Date, v.Path)
	}

	return nil
}
