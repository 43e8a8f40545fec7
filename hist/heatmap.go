// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package hist

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/tiff"
)

// Renders a joint histogram count matrix as a heatmap. Counts are log
// scaled against the fullest cell and mapped through a blue-to-red HSV
// gradient; empty cells stay black. Matrix row index becomes the image
// x coordinate and column index the y coordinate, with y flipped so the
// origin cell sits bottom left.
func RenderJoint(matrix [][]float64) *image.RGBA {
	numBins:=len(matrix)
	img:=image.NewRGBA(image.Rectangle{image.Point{0, 0}, image.Point{numBins, numBins}})

	maxCount:=float64(0)
	for _, row:=range matrix {
		for _, c:=range row {
			if c>maxCount { maxCount=c }
		}
	}
	logMax:=math.Log1p(maxCount)

	for i, row:=range matrix {
		for j, count:=range row {
			if count<=0 || logMax<=0 {
				img.SetRGBA(i, numBins-1-j, color.RGBA{0, 0, 0, 255})
				continue
			}
			t:=math.Log1p(count)/logMax
			r, g, b:=colorful.Hsv(240*(1-t), 1, 0.25+0.75*t).RGB255()
			img.SetRGBA(i, numBins-1-j, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

// Writes a joint histogram heatmap to a TIFF file.
// Creates/overwrites the file if necessary
func WriteJointTIFFToFile(fileName string, matrix [][]float64) error {
	f, err:=os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err!=nil { return err }
	defer f.Close()

	w:=bufio.NewWriter(f)
	defer w.Flush()
	return WriteJointTIFF(w, matrix)
}

// Writes a joint histogram heatmap to an io.Writer as TIFF
func WriteJointTIFF(w io.Writer, matrix [][]float64) error {
	img:=RenderJoint(matrix)
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
