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


package raster

import (
	"fmt"
)

// An in-memory multi-band raster dataset. Band data is stored band-sequential:
// each band is a row-major array of Width*Height values, most quickly varying
// dimension first (i.e. X, then Y). File I/O, projections and georeferencing
// live outside this package.
type Dataset struct {
	Width  int32       // Raster width in pixels
	Height int32       // Raster height in pixels
	Bands  [][]float32 // Band data, each of length Width*Height
}

// Creates a dataset of given dimensions with numBands zero-filled bands
func NewDataset(width, height, numBands int32) *Dataset {
	bands:=make([][]float32, numBands)
	for i,_:=range bands {
		bands[i]=make([]float32, width*height)
	}
	return &Dataset{Width: width, Height: height, Bands: bands}
}

// Creates a dataset wrapping the given band arrays. Data is not copied.
// Returns an error if any band length does not match the dimensions
func NewDatasetFromBands(width, height int32, bands ...[]float32) (*Dataset, error) {
	for i, b:=range bands {
		if int32(len(b))!=width*height {
			return nil, fmt.Errorf("band %d has %d values, expected %dx%d=%d", i, len(b), width, height, width*height)
		}
	}
	return &Dataset{Width: width, Height: height, Bands: bands}, nil
}

// Returns the number of bands in the dataset
func (d *Dataset) NumBands() int32 { return int32(len(d.Bands)) }

// Returns the number of pixels per band
func (d *Dataset) Pixels() int32 { return d.Width*d.Height }

// Returns the value of the given band at pixel position (x,y)
func (d *Dataset) At(band, x, y int32) float32 {
	return d.Bands[band][y*d.Width+x]
}

// Sets the value of the given band at pixel position (x,y)
func (d *Dataset) SetAt(band, x, y int32, value float32) {
	d.Bands[band][y*d.Width+x]=value
}

// Reports whether two datasets cover the same pixel grid
func (d *Dataset) SameDims(o *Dataset) bool {
	return d.Width==o.Width && d.Height==o.Height
}
