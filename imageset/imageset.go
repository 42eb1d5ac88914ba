package imageset

import (
	"fmt"
	"image"
	"os"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Item is one decoded image from a set, keyed by the file name it was loaded
// from (without its directory).
type Item struct {
	Name  string
	Image image.Image
}

// Width reports the pixel width of the decoded image.
func (it Item) Width() int {
	return it.Image.Bounds().Dx()
}

// Height reports the pixel height of the decoded image.
func (it Item) Height() int {
	return it.Image.Bounds().Dy()
}

// Channels reports the number of meaningful color channels in the decoded
// image. Fully opaque RGB-like images count as 3 channels even though Go
// stores them with an alpha byte.
func (it Item) Channels() int {
	switch img := it.Image.(type) {
	case *image.Gray:
		return 1
	case *image.Gray16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.CMYK:
		return 4
	case *image.Paletted:
		if img.Opaque() {
			return 3
		}
		return 4
	case *image.RGBA:
		if img.Opaque() {
			return 3
		}
		return 4
	case *image.NRGBA:
		if img.Opaque() {
			return 3
		}
		return 4
	case *image.RGBA64:
		if img.Opaque() {
			return 3
		}
		return 4
	case *image.NRGBA64:
		if img.Opaque() {
			return 3
		}
		return 4
	}

	return 4
}

// ImageSet is an ordered collection of decoded images. The order is the
// byte-order sort of the file names, not the (OS-dependent) directory listing
// order.
type ImageSet []Item

// Names lists the file names of the set, in set order.
func (s ImageSet) Names() []string {
	out := make([]string, 0, len(s))
	for _, it := range s {
		out = append(out, it.Name)
	}

	return out
}

// Load decodes every regular file under dir as an image and returns the
// ordered set. Any file that cannot be decoded is an error; use LoadLenient
// if the directory may contain non-image files. An empty directory yields an
// empty set, not an error.
func Load(dir string) (ImageSet, error) {
	return LoadWithClient(dir, nil)
}

// LoadWithClient is Load with Google Storage support: dir may be a gs:// URL
// if client is non-nil.
func LoadWithClient(dir string, client *storage.Client) (ImageSet, error) {
	set, skipped, err := load(dir, client, false)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		// Unreachable in strict mode, but guard anyway
		return nil, fmt.Errorf("could not decode %s", strings.Join(skipped, ", "))
	}

	return set, nil
}

// LoadLenient decodes every file it can under dir, skipping files that do not
// decode as images and reporting their names.
func LoadLenient(dir string, client *storage.Client) (ImageSet, []string, error) {
	return load(dir, client, true)
}

func load(dir string, client *storage.Client, lenient bool) (ImageSet, []string, error) {
	names, err := listImages(dir, client)
	if err != nil {
		return nil, nil, err
	}

	sort.Strings(names)

	set := make(ImageSet, 0, len(names))
	skipped := make([]string, 0)

	for _, name := range names {
		img, err := DecodeFile(dir+"/"+name, client)
		if err != nil {
			if lenient {
				skipped = append(skipped, name)
				continue
			}

			return nil, nil, pfx.Err(fmt.Errorf("%s: %v", name, err))
		}

		set = append(set, Item{Name: name, Image: img})
	}

	return set, skipped, nil
}

// listImages returns the file names under dir, from the local filesystem or
// from Google Storage when dir is a gs:// URL. Subdirectories are skipped.
func listImages(dir string, client *storage.Client) ([]string, error) {
	if strings.HasPrefix(dir, "gs://") {
		return listGoogleStorage(dir, client)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}

		names = append(names, f.Name())
	}

	return names, nil
}
