package main

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func JSONError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	unifiedError(h, w, r, err, code...)

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(struct {
		Success bool
		Message string
	}{
		false,
		err.Error(),
	})
}

func HTTPError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	unifiedError(h, w, r, err, code...)

	output := struct {
		StatusCode     int
		StatusCodeText string
		Error          string
	}{
		StatusCode:     http.StatusInternalServerError,
		StatusCodeText: http.StatusText(http.StatusInternalServerError),
		Error:          err.Error(),
	}

	for _, c := range code {
		output.StatusCode = c
		output.StatusCodeText = http.StatusText(c)
		break // Take the first, if any is given
	}

	// Built from the Render() function, but not calling Render()
	// to avoid possibility of infinite loop
	page := Page{
		Title:   "Error",
		Site:    h.Global.Site,
		Company: h.Global.Company,
		Email:   h.Global.Email,
		Assets:  h.Assets(),
		Data:    output,
	}

	if err := h.Template("error.html").Execute(w, page); err != nil {
		fmt.Fprintf(w, "Error (%d) (%v) with %+v", output.StatusCode, err, page)
	}
}

func unifiedError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	usedCode := http.StatusInternalServerError
	if len(code) > 0 {
		usedCode = code[0]
	}
	w.WriteHeader(usedCode)
	h.log.Println(r.Host, r.URL.Path, ":", usedCode, err)
}
