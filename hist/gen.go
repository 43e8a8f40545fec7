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
	"fmt"
	"os"
	"github.com/mlnoga/rastercalc/calc"
	"github.com/mlnoga/rastercalc/raster"
	"github.com/mlnoga/rastercalc/stats"
)

// Data arrays larger than this are auto-ranged from a random subsample
// instead of an exact scan
const autoRangeSubsampleThreshold=1<<20

// A Gen orchestrates full-raster histogram passes: it derives bin edges from
// range and width, drives an accumulator across all pixels, and finalizes
// the outputs (count arrays, edge arrays, correlation value or export file)
type Gen struct {
	calc *calc.ImageCalc
}

// Creates a histogram generator. A nil context selects machine defaults
func NewGen(ctx *calc.Context) *Gen {
	return &Gen{calc: calc.New(ctx)}
}

// Runs a masked histogram pass over the given datasets and writes the result
// to a text file, one line per bin in ascending order, each holding the bin
// lower edge and the count separated by a space, with no header. band indexes
// the concatenated bands of all datasets; the masking band is the first band
// of the first dataset, and pixels whose masking band equals maskValue are
// excluded. The file is only created after the pass completes, so a failed
// pass never leaves a partially written histogram behind
func (g *Gen) WriteHistogram(fileName string, band int, min, max float64, maskValue, binWidth float32, datasets ...*raster.Dataset) error {
	accum, err:=NewMaskedAccum(band, 0, min, max, binWidth, maskValue)
	if err!=nil { return err }
	if err:=g.calc.Run(accum, nil, datasets...); err!=nil { return err }

	f, err:=os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err!=nil { return err }
	defer f.Close()
	w:=bufio.NewWriter(f)
	for i, count:=range accum.Bins() {
		if _, err:=fmt.Fprintf(w, "%g %d\n", accum.BinRanges()[i], count); err!=nil {
			return err
		}
	}
	return w.Flush()
}

// Runs an unmasked histogram pass over one band of a dataset and returns the
// bin counts, transferring ownership to the caller. The bin count is the
// length of the returned slice
func (g *Gen) Histogram(ds *raster.Dataset, band int, min, max float64, binWidth float32) ([]uint32, error) {
	accum, err:=NewAccum(band, min, max, binWidth)
	if err!=nil { return nil, err }
	if err:=g.calc.Run(accum, nil, ds); err!=nil { return nil, err }
	return accum.Bins(), nil
}

// Runs an unmasked histogram pass with the value range derived from the band
// data itself, split into numBins bins. Small bands are ranged by an exact
// min/max scan; large bands by a subsampled mean +/- 4 sigma estimate, with
// out-of-range values clamping into the end bins as usual. Returns the bin
// counts and the bin lower edges
func (g *Gen) HistogramAutoRange(ds *raster.Dataset, band int, numBins uint32) (counts []uint32, edges []float32, err error) {
	if numBins<1 {
		return nil, nil, fmt.Errorf("%w: need at least one bin", ErrBinSpec)
	}
	if band<0 || band>=len(ds.Bands) {
		return nil, nil, fmt.Errorf("%w: dataset has %d bands, need band %d", calc.ErrBandCount, len(ds.Bands), band)
	}
	if len(ds.Bands[band])==0 {
		return nil, nil, fmt.Errorf("%w: cannot derive a range from an empty band", ErrBinSpec)
	}
	min, max:=autoRange(ds.Bands[band])
	binWidth:=float32((max-min)/float64(numBins))

	accum, err:=NewAccum(band, min, max, binWidth)
	if err!=nil { return nil, nil, err }
	if err:=g.calc.Run(accum, nil, ds); err!=nil { return nil, nil, err }
	return accum.Bins(), accum.BinRanges(), nil
}

// Derives a histogram value range from band data
func autoRange(data []float32) (min, max float64) {
	if len(data)>=autoRangeSubsampleThreshold {
		mean, stdDev:=stats.FastApproxMeanStdDev(data, 128*1024)
		min, max=float64(mean-4*stdDev), float64(mean+4*stdDev)
	} else {
		s:=stats.Calc(data)
		min, max=float64(s.Min), float64(s.Max)
	}
	if max<=min { max=min+1 }  // constant band still needs a non-empty range
	return min, max
}

// Runs a joint histogram pass pairing bandX of dsX with bandY of dsY. The
// caller pre-allocates the square count matrix and the two bin edge arrays,
// all of the same bin count; the pass fills them in place and returns the
// Pearson correlation coefficient of the two bands. Per-axis bin indexes are
// floor((value-off)*scale), clamped into range
func (g *Gen) Joint2D(matrix [][]float64, binsX, binsY []float64, dsX, dsY *raster.Dataset, bandX, bandY int, scaleX, scaleY, offX, offY float64) (r float64, err error) {
	if len(binsX)!=len(matrix) || len(binsY)!=len(matrix) {
		return 0, fmt.Errorf("%w: edge arrays of %d and %d bins do not match %d matrix rows", ErrBinSpec, len(binsX), len(binsY), len(matrix))
	}
	if bandX<0 || bandX>=len(dsX.Bands) || bandY<0 || bandY>=len(dsY.Bands) {
		return 0, fmt.Errorf("%w: band %d of %d and band %d of %d", calc.ErrBandCount, bandX, len(dsX.Bands), bandY, len(dsY.Bands))
	}

	accum, err:=NewJointAccum(matrix, bandX, len(dsX.Bands)+bandY, scaleX, scaleY, offX, offY)
	if err!=nil { return 0, err }
	for i,_:=range binsX {
		binsX[i]=offX+float64(i)/scaleX
		binsY[i]=offY+float64(i)/scaleY
	}
	if err:=g.calc.Run(accum, nil, dsX, dsY); err!=nil { return 0, err }
	return accum.Correlation(), nil
}
