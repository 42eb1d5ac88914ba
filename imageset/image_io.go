package imageset

import (
	"bytes"
	"image"
	"image/png"
	"io/ioutil"

	_ "image/gif"
	_ "image/jpeg"

	"cloud.google.com/go/storage"
	_ "golang.org/x/image/bmp"
)

// ImageFromBytes creates an image from the specified bytes. Must be PNG, GIF,
// BMP, or JPEG formatted (based on the decoders we have imported).
func ImageFromBytes(imgBytes []byte) (image.Image, error) {
	imgReader := bytes.NewReader(imgBytes)

	img, _, err := image.Decode(imgReader)

	return img, err
}

// DecodeFile opens filePath from the local filesystem or from Google Storage
// (gs:// URLs, when client is non-nil) and decodes it as an image.
func DecodeFile(filePath string, client *storage.Client) (image.Image, error) {
	f, err := MaybeOpenFromGoogleStorage(filePath, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The image decoder swallows errors, so we won't see i/o errors if they
	// happen during image decoding. To capture these, we read the full image
	// into memory here, and pass a byte reader to the image decoder.

	imgBytes, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return ImageFromBytes(imgBytes)
}

// EncodePNG re-encodes a decoded image as PNG bytes, suitable for embedding
// in an HTML page or writing back to disk.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// PNG re-encodes the item's decoded image as PNG bytes.
func (it Item) PNG() ([]byte, error) {
	return EncodePNG(it.Image)
}
