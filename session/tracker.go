package session

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
)

const (
	annoImageCol = iota
	annoValueCol
	annoDateCol
	annoPathCol
	annoLastCol
)

// Annotation is one image's label as it is stored on disk.
type Annotation struct {
	Image string
	Value string
	Date  string
	Path  string
}

// CreateFileAndPath creates the file at path (and any missing parent
// directories) if it does not yet exist.
func CreateFileAndPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pfx.Err(err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}

// OpenOrCreateAnnotationFile reads any annotations already present at
// annotationPath, creating the file if none yet exists. This is what lets a
// restarted session resume with its earlier labels.
func OpenOrCreateAnnotationFile(annotationPath string) (map[string]Annotation, error) {
	if err := CreateFileAndPath(annotationPath); err != nil {
		return nil, err
	}

	annoFile, err := os.Open(annotationPath)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer annoFile.Close()

	// File format: tab-delimited: image, value, date, path
	cread := csv.NewReader(annoFile)
	cread.Comma = '\t'
	priorAnnotationCSV, err := cread.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	extantAnnotations := make(map[string]Annotation)
	for i, row := range priorAnnotationCSV {
		if i == 0 {
			continue
		}
		if len(row) != annoLastCol {
			continue
		}

		extantAnnotations[row[annoImageCol]] = Annotation{
			Image: row[annoImageCol],
			Value: row[annoValueCol],
			Date:  row[annoDateCol],
			Path:  row[annoPathCol],
		}
	}

	return extantAnnotations, nil
}
