package main

import (
	"encoding/csv"

	"cloud.google.com/go/storage"

	"github.com/openimaging/labeler/imageset"
)

// ReadManifest reads a tab-delimited file whose first column holds the file
// names of the images of interest, in the order they should be presented.
// A header line named "image" is skipped if present.
func ReadManifest(manifestPath string, client *storage.Client) ([]string, error) {
	f, err := imageset.MaybeOpenFromGoogleStorage(manifestPath, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(recs))
	for i, cols := range recs {
		if len(cols) < 1 || cols[0] == "" {
			continue
		}
		if i == 0 && cols[0] == "image" {
			continue
		}

		names = append(names, cols[0])
	}

	return names, nil
}

// FilterSet reorders and restricts the set to the named images, in manifest
// order. Names that are not present in the set are skipped and reported so
// the caller can log them.
func FilterSet(set imageset.ImageSet, names []string) (imageset.ImageSet, []string) {
	byName := make(map[string]imageset.Item, len(set))
	for _, it := range set {
		byName[it.Name] = it
	}

	out := make(imageset.ImageSet, 0, len(names))
	missing := make([]string, 0)

	for _, name := range names {
		it, exists := byName[name]
		if !exists {
			missing = append(missing, name)
			continue
		}

		out = append(out, it)
	}

	return out, missing
}
