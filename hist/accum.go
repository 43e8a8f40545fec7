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
	"errors"
	"fmt"
	"math"
	"github.com/pbnjay/memory"
	"github.com/mlnoga/rastercalc/calc"
)

// Reported when a bin specification is invalid: non-positive bin width,
// empty value range, or a bin count too large to allocate
var ErrBinSpec=errors.New("invalid bin specification")

// Derives the bin count for a {min, max, binWidth} specification as
// ceil((max-min)/binWidth). Errors are detected here, at construction
// time, never deferred to the first pixel
func NumBins(min, max float64, binWidth float32) (uint32, error) {
	if binWidth<=0 {
		return 0, fmt.Errorf("%w: bin width %g must be positive", ErrBinSpec, binWidth)
	}
	if max<=min {
		return 0, fmt.Errorf("%w: range [%g, %g) is empty", ErrBinSpec, min, max)
	}
	ratio:=math.Ceil((max-min)/float64(binWidth))
	if !(ratio>=1) || ratio>float64(math.MaxUint32) {
		return 0, fmt.Errorf("%w: %g bins for range [%g, %g) at width %g", ErrBinSpec, ratio, min, max, binWidth)
	}
	numBins:=uint64(ratio)
	if numBins*4>memory.TotalMemory() {
		return 0, fmt.Errorf("%w: %d bins exceed physical memory", ErrBinSpec, numBins)
	}
	return uint32(numBins), nil
}

// An Accum bins one band of a raster pass into a fixed-size 1-D histogram.
// Values below min clamp into bin 0, values at or above max clamp into the
// last bin, so every visited non-masked pixel lands in exactly one bin and
// the bin counts sum to the number of contributing pixels. Bin arrays are
// sized once at construction and never resized. An Accum instance must
// receive pixels from a single goroutine; partitioned parallel passes go
// through Fork and Join instead.
type Accum struct {
	bins      []uint32
	binRanges []float32 // lower edge per bin
	band      int       // value band index into the concatenated pass bands
	min       float64
	binWidth  float32
	masked    bool
	maskBand  int // masking band index into the concatenated pass bands
	maskValue float32
}

// Creates an unmasked 1-D histogram accumulator over the given concatenated
// band index. Every visited pixel contributes
func NewAccum(band int, min, max float64, binWidth float32) (*Accum, error) {
	numBins, err:=NumBins(min, max, binWidth)
	if err!=nil { return nil, err }

	binRanges:=make([]float32, numBins)
	for i,_:=range binRanges {
		binRanges[i]=float32(min+float64(i)*float64(binWidth))
	}
	return &Accum{
		bins     : make([]uint32, numBins),
		binRanges: binRanges,
		band     : band,
		min      : min,
		binWidth : binWidth,
	}, nil
}

// Creates a masked 1-D histogram accumulator. Pixels whose maskBand value
// equals maskValue are excluded from the histogram entirely
func NewMaskedAccum(band, maskBand int, min, max float64, binWidth, maskValue float32) (*Accum, error) {
	a, err:=NewAccum(band, min, max, binWidth)
	if err!=nil { return nil, err }
	a.masked   =true
	a.maskBand =maskBand
	a.maskValue=maskValue
	return a, nil
}

func (a *Accum) OutBands() int { return 0 }

func (a *Accum) Visit(bands []float32, out []float64) error {
	if a.band<0 || a.band>=len(bands) || (a.masked && (a.maskBand<0 || a.maskBand>=len(bands))) {
		return fmt.Errorf("%w: visited with %d bands, need band %d", calc.ErrBandCount, len(bands), a.band)
	}
	if a.masked && bands[a.maskBand]==a.maskValue { return nil }

	bin:=int64(math.Floor((float64(bands[a.band])-a.min)/float64(a.binWidth)))
	if bin<0 { bin=0 }
	if bin>=int64(len(a.bins)) { bin=int64(len(a.bins))-1 }
	a.bins[bin]++
	return nil
}

// Returns the bin counts. The slice is owned by the accumulator while the
// pass runs; callers take ownership once accumulation has finished
func (a *Accum) Bins() []uint32 { return a.bins }

// Returns the lower edge of each bin, parallel to Bins()
func (a *Accum) BinRanges() []float32 { return a.binRanges }

// Returns the number of bins
func (a *Accum) NumBins() uint32 { return uint32(len(a.bins)) }

func (a *Accum) Fork() calc.Forker {
	f:=*a
	f.bins=make([]uint32, len(a.bins))
	return &f
}

func (a *Accum) Join(partial calc.Forker) error {
	p, ok:=partial.(*Accum)
	if !ok || len(p.bins)!=len(a.bins) {
		return fmt.Errorf("%w: cannot join foreign partial", ErrBinSpec)
	}
	for i, c:=range p.bins {
		a.bins[i]+=c
	}
	return nil
}
