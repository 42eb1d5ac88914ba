package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/openimaging/labeler/labelscheme"
	"github.com/openimaging/labeler/session"
)

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.Session()

	output := struct {
		Project      string
		ImageCount   int
		LabeledCount int
		AllSeen      bool
		Progress     string
		MultiMode    bool
	}{
		h.Global.Project,
		sess.Len(),
		sess.LabeledCount(),
		sess.AllSeen(),
		sess.Progress(),
		sess.MultiMode(),
	}

	Render(h, w, r, h.Global.Site, "index.html", output, nil)
}

func (h *handler) ListProject(w http.ResponseWriter, r *http.Request) {
	output := struct {
		Project string
		Entries []session.Annotation
	}{
		h.Global.Project,
		h.Session().Entries(),
	}

	Render(h, w, r, "List Project", "listproject.html", output, nil)
}

// labelCell is the data behind one input cell: the image, its current value,
// and whatever the scheme needs to render its controls.
type labelCell struct {
	Index        int
	Name         string
	Value        string
	EncodedImage string
	Width        int
	Height       int
	Selected     string
	Val          labelscheme.ValResult
}

func (h *handler) cellFor(idx int) (labelCell, error) {
	sess := h.Session()

	item, err := sess.Item(idx)
	if err != nil {
		return labelCell{}, err
	}

	pngBytes, err := item.PNG()
	if err != nil {
		return labelCell{}, err
	}

	encodedString := base64.StdEncoding.EncodeToString(pngBytes)

	value := sess.Label(idx)

	// The scheme's default is preselected until this image has been labeled
	selected := sess.Scheme().Normalize(value)
	if selected == "" {
		selected = sess.Scheme().Default()
	}

	// Detector forms are seeded from the current counts, zeros otherwise
	valResult, _ := labelscheme.ParseValResult(selected)

	return labelCell{
		Index:        idx,
		Name:         item.Name,
		Value:        value,
		EncodedImage: strings.NewReplacer("\n", "", "\r", "").Replace(encodedString),
		Width:        item.Width(),
		Height:       item.Height(),
		Selected:     selected,
		Val:          valResult,
	}, nil
}

func (h *handler) LabelHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.Session()

	imageIdx := mux.Vars(r)["image_index"]
	imageIndex, err := strconv.Atoi(imageIdx)
	if err != nil {
		HTTPError(h, w, r, fmt.Errorf("no image_index passed"))
		return
	}

	if imageIndex < 0 || imageIndex >= sess.Len() {
		HTTPError(h, w, r, fmt.Errorf("image_index was %d, out of range of the image set", imageIndex))
		return
	}

	cell, err := h.cellFor(imageIndex)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	sess.SetCursor(imageIndex)
	sess.MarkSeen(imageIndex)

	prev := imageIndex - 1
	if prev < 0 {
		prev = 0
	}
	next := imageIndex + 1
	if next > sess.Len()-1 {
		next = sess.Len() - 1
	}

	output := struct {
		Project    string
		Cell       labelCell
		PrevIndex  int
		NextIndex  int
		Progress   string
		AllSeen    bool
		SchemeKind string
		Classes    []labelscheme.Class
	}{
		h.Global.Project,
		cell,
		prev,
		next,
		sess.Progress(),
		sess.AllSeen(),
		sess.Scheme().Kind(),
		h.Global.Classes,
	}

	Render(h, w, r, "Label", "label.html", output, nil)
}

func (h *handler) LabelPost(w http.ResponseWriter, r *http.Request) {
	sess := h.Session()

	imageIdx := mux.Vars(r)["image_index"]
	imageIndex, err := strconv.Atoi(imageIdx)
	if err != nil {
		HTTPError(h, w, r, fmt.Errorf("no image_index passed"))
		return
	}
	if imageIndex < 0 || imageIndex >= sess.Len() {
		HTTPError(h, w, r, fmt.Errorf("image_index was %d, out of range of the image set", imageIndex))
		return
	}

	r.ParseForm()

	value, err := sess.Scheme().ParseForm(r.PostForm)
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	item, _ := sess.Item(imageIndex)
	h.log.Println("Label submitted:", item.Name, value)

	if err := sess.SetLabel(imageIndex, value); err != nil {
		HTTPError(h, w, r, err)
		return
	}

	// Write to disk. Can consider launching in a goroutine to reduce delay.
	if err := sess.WriteAnnotationsToDisk(h.Global.ImageRoot); err != nil {
		HTTPError(h, w, r, err)
		return
	}

	if sess.MultiMode() {
		http.Redirect(w, r, fmt.Sprintf("/multi#cell-%d", imageIndex), http.StatusSeeOther)
		return
	}

	nextURL, err := h.router.Get("label").URL("image_index", strconv.Itoa(sess.Cursor()))
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	http.Redirect(w, r, nextURL.String(), http.StatusSeeOther)
}

func (h *handler) MultiHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.Session()

	cells := make([]labelCell, 0, sess.Len())
	for i := 0; i < sess.Len(); i++ {
		cell, err := h.cellFor(i)
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}

		sess.MarkSeen(i)
		cells = append(cells, cell)
	}

	output := struct {
		Project    string
		Cells      []labelCell
		AllSeen    bool
		SchemeKind string
		Classes    []labelscheme.Class
	}{
		h.Global.Project,
		cells,
		sess.AllSeen(),
		sess.Scheme().Kind(),
		h.Global.Classes,
	}

	Render(h, w, r, "Label All", "multi.html", output, nil)
}

func (h *handler) Goroutines(w http.ResponseWriter, r *http.Request) {
	goroutines := fmt.Sprintf("%d goroutines are currently active\n", runtime.NumGoroutine())

	w.Write([]byte(goroutines))
}
