package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/openimaging/labeler/buildinfo"
	"github.com/openimaging/labeler/session"
)

func main() {
	var inputPath, chartPath string

	flag.StringVar(&inputPath, "input", "", "Path to an annotation file produced by the labeler.")
	flag.StringVar(&chartPath, "chart", "", "(Optional) Path where a bar chart PNG of the tallies will be written.")
	flag.Parse()

	if inputPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	buildinfo.Log(log.Default())

	values, counts, err := Tally(inputPath)
	if err != nil {
		log.Fatalln(err)
	}

	w := csv.NewWriter(os.Stdout)
	w.Comma = '\t'
	for i, value := range values {
		w.Write([]string{value, fmt.Sprintf("%d", counts[i])})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalln(err)
	}

	if chartPath != "" {
		if err := WriteChart(chartPath, values, counts); err != nil {
			log.Fatalln(err)
		}
	}
}

// Tally counts how many images carry each label value in the annotation
// file, in first-seen order.
func Tally(annotationPath string) ([]string, []int, error) {
	annotations, err := session.OpenOrCreateAnnotationFile(annotationPath)
	if err != nil {
		return nil, nil, err
	}

	// Iterate the file again rather than the map, so the tally order follows
	// the file order.
	f, err := os.Open(annotationPath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	fs := NewFastSlice()
	counts := make([]int, 0)

	for i, row := range recs {
		if i == 0 || len(row) < 2 {
			continue
		}

		anno, exists := annotations[row[0]]
		if !exists || anno.Value == "" {
			continue
		}

		pos := fs.Add(anno.Value)
		if pos >= len(counts) {
			counts = append(counts, 0)
		}
		counts[pos]++
	}

	return fs.Slice(), counts, nil
}

// WriteChart renders the tallies as a bar chart PNG.
func WriteChart(chartPath string, values []string, counts []int) error {
	if len(values) < 1 {
		return fmt.Errorf("no labeled entries to chart")
	}

	bars := make([]chart.Value, 0, len(values))
	for i, value := range values {
		bars = append(bars, chart.Value{Label: value, Value: float64(counts[i])})
	}

	barChart := chart.BarChart{
		Title:    "Labels",
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
	}

	f, err := os.Create(chartPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return barChart.Render(chart.PNG, f)
}
