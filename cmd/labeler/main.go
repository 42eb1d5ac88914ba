package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"runtime"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"

	"github.com/openimaging/labeler/buildinfo"
	"github.com/openimaging/labeler/imageset"
	"github.com/openimaging/labeler/labelscheme"
	"github.com/openimaging/labeler/session"
)

var global *Global

func init() {
	// Prevent seed re-use
	rand.Seed(int64(time.Now().Nanosecond()))
}

func main() {
	errors := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig,
		os.Interrupt,
		os.Kill,
		syscall.SIGTERM,
		syscall.SIGUSR1,
	)

	var project, imageRoot, manifestPath, outputPath, labelsFile, schemeName, configPath string
	var multiMode bool
	var port int
	flag.StringVar(&configPath, "config", "", "(Optional) JSON config file supplying any of the other options. Explicit flags win.")
	flag.StringVar(&project, "project", "", "(Optional) Display name for this labeling project. Defaults to the output path.")
	flag.StringVar(&imageRoot, "images", "", "Path under which the images of interest sit. May be a Google Storage URL (gs://).")
	flag.StringVar(&manifestPath, "manifest", "", "(Optional) Path with a file whose first column is the file names of the images of interest from the --images folder.")
	flag.StringVar(&outputPath, "output", "", "Path to a local file where all output will be written. Will be created if it does not yet exist.")
	flag.StringVar(&labelsFile, "labels", "", "(Optional) json file with labels. E.g.: {Labels: [{'name':'Label 1', 'value':'l1'}]}")
	flag.StringVar(&schemeName, "scheme", "class", "Labeling scheme: 'class' (one class per image) or 'detector' (true/false positive and false negative counts per image).")
	flag.BoolVar(&multiMode, "multi", false, "(Optional) If true, presents every image on one page instead of one image at a time.")
	flag.IntVar(&port, "port", 9019, "Port for HTTP server")
	flag.Parse()

	if configPath != "" {
		cfg, err := ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}

		if project == "" {
			project = cfg.Project
		}
		if imageRoot == "" {
			imageRoot = cfg.ImagePath
		}
		if manifestPath == "" {
			manifestPath = cfg.ManifestPath
		}
		if outputPath == "" {
			outputPath = cfg.OutputPath
		}
		if labelsFile == "" {
			labelsFile = cfg.LabelsPath
		}
		if cfg.Scheme != "" && schemeName == "class" {
			schemeName = cfg.Scheme
		}
		if cfg.MultiMode {
			multiMode = true
		}
		if cfg.Port != 0 && port == 9019 {
			port = cfg.Port
		}
	}

	if imageRoot == "" || outputPath == "" {
		flag.PrintDefaults()
		return
	}

	imageRoot = strings.TrimSuffix(imageRoot, "/")

	if project == "" {
		project = outputPath
	}

	var sclient *storage.Client
	var err error

	if strings.HasPrefix(imageRoot, "gs://") || strings.HasPrefix(manifestPath, "gs://") {
		sclient, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	classes := []labelscheme.Class{
		{DisplayName: "Bad Image", Value: "bad-image"},
		{DisplayName: "Mistraced Segmentation", Value: "mistrace"},
		{DisplayName: "Good", Value: "good"},
	}

	if labelsFile != "" {
		lf, err := os.Open(labelsFile)
		if err != nil {
			log.Fatalln(err)
		}

		if newClasses, err := labelscheme.ParseLabelFile(lf); err != nil {
			log.Fatalln(err)
		} else {
			classes = newClasses
		}
		lf.Close()
	}

	var scheme labelscheme.Scheme
	switch schemeName {
	case "class":
		scheme, err = labelscheme.NewClassScheme(classes, "")
		if err != nil {
			log.Fatalln(err)
		}
	case "detector":
		scheme = labelscheme.DetectorScheme{}
	default:
		log.Fatalf("unknown scheme %q (want 'class' or 'detector')\n", schemeName)
	}

	global = &Global{
		Site:    "Labeler",
		Company: "Open Imaging",
		Email:   "labeler@openimaging.dev",
		log:     log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),

		storageClient: sclient,

		Project:    project,
		ImageRoot:  imageRoot,
		OutputPath: outputPath,
		Classes:    classes,
	}

	buildinfo.Log(global.log)

	global.log.Println("Loading images from", imageRoot)

	set, skipped, err := imageset.LoadLenient(imageRoot, sclient)
	if err != nil {
		log.Fatalln(err)
	}
	for _, name := range skipped {
		global.log.Println("Skipping non-image file", name)
	}

	if manifestPath != "" {
		names, err := ReadManifest(manifestPath, sclient)
		if err != nil {
			log.Fatalln(err)
		}

		var missing []string
		set, missing = FilterSet(set, names)
		for _, name := range missing {
			global.log.Println("Manifest entry", name, "was not found under", imageRoot)
		}
	}

	global.log.Println("Loaded", len(set), "images")

	sessOpts := []session.Option{session.WithAnnotationFile(outputPath)}
	if multiMode {
		sessOpts = append(sessOpts, session.WithMultiMode())
	}

	sess, err := session.New(set, scheme, sessOpts...)
	if err != nil {
		log.Fatalln(err)
	}
	global.session = sess

	global.log.Println("Launching", global.Site)

	whoami, err := user.Current()
	if err != nil {
		log.Fatalln(err)
	}
	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalln(err)
	}

	global.log.Println("If this is running on a remote machine, locally you should now run:")
	global.log.Printf("gcloud compute ssh %s@%s -- -NnT -L %d:localhost:%d\n", whoami.Username, hostname, port, port)

	go func() {
		global.log.Println("Starting HTTP server on port", port)

		routing, err := router(global)
		if err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}

		if err := http.ListenAndServe(fmt.Sprintf(`:%d`, port), routing); err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}
	}()

Outer:
	for {
		select {
		case sigl := <-sig:

			if sigl == syscall.SIGUSR1 {
				SigStatus()
				continue
			}

			// By default, exit
			global.log.Printf("\nExit: %s\n", sigl.String())

			break Outer

		case err := <-errors:
			if err == nil {
				global.log.Println("Finished")
				break Outer
			}

			// Return a status code indicating failure
			global.log.Println("Exiting due to error", err)
			os.Exit(1)
		}
	}
}

func SigStatus() {
	global.log.Println("There are", runtime.NumGoroutine(), "goroutines running")
}
