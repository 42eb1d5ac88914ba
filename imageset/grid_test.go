package imageset

import (
	"image"
	"strconv"
	"testing"
)

func testSet(n, width, height int) ImageSet {
	set := make(ImageSet, 0, n)
	for i := 0; i < n; i++ {
		set = append(set, Item{
			Name:  strconv.Itoa(i) + ".png",
			Image: image.NewNRGBA(image.Rect(0, 0, width, height)),
		})
	}

	return set
}

func TestGridBounds(t *testing.T) {
	sheet, err := Grid(testSet(3, 10, 10), 2)
	if err != nil {
		t.Fatal(err)
	}

	// 3 images in 2 columns: 2 rows
	if sheet.Bounds().Dx() != 20 || sheet.Bounds().Dy() != 20 {
		t.Errorf("Expected a 20x20 sheet, got %dx%d", sheet.Bounds().Dx(), sheet.Bounds().Dy())
	}
}

func TestGridSingleColumn(t *testing.T) {
	sheet, err := Grid(testSet(2, 6, 4), 0)
	if err != nil {
		t.Fatal(err)
	}

	// ncols below 1 collapses to 1
	if sheet.Bounds().Dx() != 6 || sheet.Bounds().Dy() != 8 {
		t.Errorf("Expected a 6x8 sheet, got %dx%d", sheet.Bounds().Dx(), sheet.Bounds().Dy())
	}
}

func TestGridEmptySet(t *testing.T) {
	if _, err := Grid(ImageSet{}, 2); err == nil {
		t.Error("Expected an error for an empty set")
	}
}

func TestGridZeroSizedImage(t *testing.T) {
	set := testSet(1, 4, 4)
	set = append(set, Item{Name: "zero.png", Image: image.NewNRGBA(image.Rect(0, 0, 0, 0))})

	if _, err := Grid(set, 2); err == nil {
		t.Error("Expected an error for a zero-sized image")
	}
}

func TestGridCellCap(t *testing.T) {
	set := testSet(1, MaxCellEdge+100, MaxCellEdge+100)

	sheet, err := Grid(set, 1)
	if err != nil {
		t.Fatal(err)
	}

	if sheet.Bounds().Dx() != MaxCellEdge || sheet.Bounds().Dy() != MaxCellEdge {
		t.Errorf("Expected a %dx%d sheet, got %dx%d", MaxCellEdge, MaxCellEdge, sheet.Bounds().Dx(), sheet.Bounds().Dy())
	}
}

func TestGridMixedSizes(t *testing.T) {
	set := testSet(1, 10, 10)
	set = append(set, Item{Name: "small.png", Image: image.NewNRGBA(image.Rect(0, 0, 4, 4))})

	sheet, err := Grid(set, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Cell size follows the largest image
	if sheet.Bounds().Dx() != 20 || sheet.Bounds().Dy() != 10 {
		t.Errorf("Expected a 20x10 sheet, got %dx%d", sheet.Bounds().Dx(), sheet.Bounds().Dy())
	}
}
