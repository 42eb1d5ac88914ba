package imageset

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// MaxCellEdge caps the width and height of one grid cell. Images larger than
// this are scaled down to fit, so a sheet of full-resolution scans stays a
// reasonable size.
const MaxCellEdge = 512

// Grid composes every image in the set into one contact-sheet image with
// ncols columns, in set order, row-major, on a black background. Each cell is
// sized to the largest image in the set, capped at MaxCellEdge per side.
// Smaller images are drawn at their own size in the top-left of their cell.
func Grid(set ImageSet, ncols int) (image.Image, error) {
	if len(set) < 1 {
		return nil, fmt.Errorf("cannot compose a grid from an empty image set")
	}
	if ncols < 1 {
		ncols = 1
	}

	nrows := len(set) / ncols
	if len(set)%ncols != 0 {
		nrows++
	}

	maxWidth := -1
	maxHeight := -1
	for _, it := range set {
		if it.Width() == 0 || it.Height() == 0 {
			return nil, fmt.Errorf("image %s has a height or width of 0", it.Name)
		}

		if x := it.Width(); x > maxWidth {
			maxWidth = x
		}
		if y := it.Height(); y > maxHeight {
			maxHeight = y
		}
	}

	if maxWidth > MaxCellEdge {
		maxWidth = MaxCellEdge
	}
	if maxHeight > MaxCellEdge {
		maxHeight = MaxCellEdge
	}

	r := image.Rect(0, 0, ncols*maxWidth, nrows*maxHeight)
	sheet := image.NewRGBA(r)

	// Set a black background
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	for i, it := range set {
		row := i / ncols
		col := i % ncols

		pane := it.Image
		if pane.Bounds().Dx() > maxWidth || pane.Bounds().Dy() > maxHeight {
			pane = imaging.Fit(pane, maxWidth, maxHeight, imaging.Lanczos)
		}

		startX := col * maxWidth
		startY := row * maxHeight
		drawRect := image.Rect(startX, startY, startX+pane.Bounds().Dx(), startY+pane.Bounds().Dy())

		// Draw the pane into the sheet at its designated spot
		draw.Draw(sheet, drawRect, pane, pane.Bounds().Min, draw.Src)
	}

	return sheet, nil
}
