package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/openimaging/labeler/buildinfo"
	"github.com/openimaging/labeler/imageset"
)

// Safe for concurrent use by multiple goroutines
var client *storage.Client

func main() {
	fmt.Fprintf(os.Stderr, "%q\n", os.Args)

	var inputPath, outputPath string
	var cols int

	flag.StringVar(&inputPath, "input", "", "Path to a folder of images to compose into one contact sheet. May be a Google Storage URL (gs://).")
	flag.StringVar(&outputPath, "output", "", "Path where the output PNG will be written.")
	flag.IntVar(&cols, "cols", 4, "Number of images per row.")
	flag.Parse()

	if inputPath == "" || outputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	buildinfo.Log(log.Default())

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	if strings.HasPrefix(inputPath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	if err := composeSheet(inputPath, outputPath, cols); err != nil {
		log.Fatalln(err)
	}
}

func composeSheet(inputPath, outputPath string, cols int) error {
	set, skipped, err := imageset.LoadLenient(strings.TrimSuffix(inputPath, "/"), client)
	if err != nil {
		return err
	}
	for _, name := range skipped {
		log.Println("Skipping non-image file", name)
	}

	if len(set) < 1 {
		return fmt.Errorf("no images were found under %s", inputPath)
	}

	sheet, err := imageset.Grid(set, cols)
	if err != nil {
		return err
	}

	pngBytes, err := imageset.EncodePNG(sheet)
	if err != nil {
		return err
	}

	log.Printf("Composed %d images into a %dx%d sheet\n", len(set), sheet.Bounds().Dx(), sheet.Bounds().Dy())

	return os.WriteFile(outputPath, pngBytes, 0666)
}
