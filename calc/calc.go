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


package calc

import (
	"errors"
	"fmt"
	"github.com/mlnoga/rastercalc/raster"
)

// Reported when datasets in a pass do not cover the same pixel grid
var ErrDimensionMismatch=errors.New("dataset dimensions mismatch")

// An ImageCalc drives a visitor across every pixel of one or more aligned
// datasets. It owns the per-pixel band gathering and output write-back;
// the visitor owns the per-pixel arithmetic.
type ImageCalc struct {
	ctx *Context
}

// Creates an image calculator. A nil context selects machine defaults
func New(ctx *Context) *ImageCalc {
	if ctx==nil { ctx=NewContext() }
	return &ImageCalc{ctx: ctx}
}

// Validates a pass configuration and returns the total band count across all datasets
func checkPass(v Visitor, out *raster.Dataset, datasets []*raster.Dataset) (totalBands int, err error) {
	if len(datasets)==0 { return 0, errors.New("no input datasets") }
	for i, ds:=range datasets {
		if !datasets[0].SameDims(ds) {
			return 0, fmt.Errorf("%w: dataset 0 is %dx%d, dataset %d is %dx%d",
				ErrDimensionMismatch, datasets[0].Width, datasets[0].Height, i, ds.Width, ds.Height)
		}
		totalBands+=len(ds.Bands)
	}
	if out!=nil {
		if !datasets[0].SameDims(out) {
			return 0, fmt.Errorf("%w: output is %dx%d, inputs are %dx%d",
				ErrDimensionMismatch, out.Width, out.Height, datasets[0].Width, datasets[0].Height)
		}
		if int(out.NumBands())!=v.OutBands() {
			return 0, fmt.Errorf("%w: output dataset has %d bands, visitor produces %d",
				ErrBandCount, out.NumBands(), v.OutBands())
		}
	}
	return totalBands, nil
}

// Runs a sequential pass, visiting every pixel of the given aligned datasets
// exactly once. When out is non-nil, the visitor's output values are written
// back into it. A failed visit aborts the pass immediately.
func (c *ImageCalc) Run(v Visitor, out *raster.Dataset, datasets ...*raster.Dataset) error {
	totalBands, err:=checkPass(v, out, datasets)
	if err!=nil { return err }
	return runRows(v, out, datasets, totalBands, 0, datasets[0].Height)
}

// Visits all pixels in rows [yStart, yEnd) of the given datasets
func runRows(v Visitor, out *raster.Dataset, datasets []*raster.Dataset, totalBands int, yStart, yEnd int32) error {
	width:=datasets[0].Width
	bands:=make([]float32, totalBands)
	var outBuf []float64
	if v.OutBands()>0 { outBuf=make([]float64, v.OutBands()) }

	for y:=yStart; y<yEnd; y++ {
		for x:=int32(0); x<width; x++ {
			p:=y*width+x
			i:=0
			for _, ds:=range datasets {
				for _, b:=range ds.Bands {
					bands[i]=b[p]
					i++
				}
			}
			if err:=v.Visit(bands, outBuf); err!=nil {
				return fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
			if out!=nil {
				for ob:=0; ob<len(outBuf); ob++ {
					out.Bands[ob][p]=float32(outBuf[ob])
				}
			}
		}
	}
	return nil
}

// Runs a pass partitioned by row ranges across up to MaxThreads workers.
// Requires a Forker; visitors without partitionable aggregation state fall
// back to a sequential pass. Each worker aggregates into its own fork, and
// the partials are joined into v after all workers finish, so no locking
// happens on the per-pixel path. Output rows are disjoint between workers.
func (c *ImageCalc) RunParallel(v Visitor, out *raster.Dataset, datasets ...*raster.Dataset) error {
	f, ok:=v.(Forker)
	if !ok || c.ctx.MaxThreads<=1 { return c.Run(v, out, datasets...) }

	totalBands, err:=checkPass(v, out, datasets)
	if err!=nil { return err }

	height:=datasets[0].Height
	numParts:=int32(c.ctx.MaxThreads)
	if numParts>height { numParts=height }
	if numParts<=1 { return c.Run(v, out, datasets...) }

	forks:=make([]Forker, numParts)
	errs :=make(chan error, numParts)
	rowsPerPart:=(height+numParts-1)/numParts
	for i:=int32(0); i<numParts; i++ {
		forks[i]=f.Fork()
		go func(part int32) {
			yStart:=part*rowsPerPart
			yEnd  :=yStart+rowsPerPart
			if yEnd>height { yEnd=height }
			errs<-runRows(forks[part], out, datasets, totalBands, yStart, yEnd)
		}(i)
	}
	for i:=int32(0); i<numParts; i++ {  // collect errors
		if e:=<-errs; e!=nil {
			if err==nil {
				err=e
			} else {
				err=fmt.Errorf("%s; %s", err.Error(), e.Error())
			}
		}
	}
	if err!=nil { return err }

	for _, fork:=range forks {  // fold partials back into v
		if err:=f.Join(fork); err!=nil { return err }
	}
	return nil
}
