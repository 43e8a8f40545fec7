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
	"fmt"
	"math"
	"github.com/pbnjay/memory"
	"github.com/mlnoga/rastercalc/calc"
)

// A JointAccum pairs one band from each of two co-registered datasets and
// bins the pairs into a caller-supplied numBins x numBins count matrix,
// independently scaled and offset per axis: binIndex=floor((value-off)*scale),
// clamped into [0, numBins-1]. Alongside the matrix it accumulates the
// running sums needed to derive the Pearson correlation coefficient of the
// two bands at the end of the pass. Single goroutine per instance; use
// Fork/Join for partitioned passes.
type JointAccum struct {
	matrix         [][]float64
	bandX, bandY   int // band indexes into the concatenated pass bands
	scaleX, scaleY float64
	offX, offY     float64

	// running sums for the correlation coefficient
	sumX, sumY, sumXX, sumYY, sumXY float64
	n                               uint64
}

// Creates a 2-D joint histogram accumulator filling the given matrix, which
// must be square with at least one row. bandX and bandY index the
// concatenated band values of the pass
func NewJointAccum(matrix [][]float64, bandX, bandY int, scaleX, scaleY, offX, offY float64) (*JointAccum, error) {
	numBins:=len(matrix)
	if numBins<1 {
		return nil, fmt.Errorf("%w: joint histogram needs at least one bin", ErrBinSpec)
	}
	if uint64(numBins)*uint64(numBins)*8>memory.TotalMemory() {
		return nil, fmt.Errorf("%w: %dx%d matrix exceeds physical memory", ErrBinSpec, numBins, numBins)
	}
	for i, row:=range matrix {
		if len(row)!=numBins {
			return nil, fmt.Errorf("%w: matrix row %d has %d columns, expected %d", ErrBinSpec, i, len(row), numBins)
		}
	}
	if scaleX<=0 || scaleY<=0 {
		return nil, fmt.Errorf("%w: axis scales %g, %g must be positive", ErrBinSpec, scaleX, scaleY)
	}
	return &JointAccum{
		matrix: matrix,
		bandX : bandX, bandY : bandY,
		scaleX: scaleX, scaleY: scaleY,
		offX  : offX,   offY  : offY,
	}, nil
}

func (a *JointAccum) OutBands() int { return 0 }

func (a *JointAccum) Visit(bands []float32, out []float64) error {
	if a.bandX<0 || a.bandX>=len(bands) || a.bandY<0 || a.bandY>=len(bands) {
		return fmt.Errorf("%w: visited with %d bands, need bands %d and %d", calc.ErrBandCount, len(bands), a.bandX, a.bandY)
	}
	x, y:=float64(bands[a.bandX]), float64(bands[a.bandY])

	numBins:=int64(len(a.matrix))
	ix:=int64(math.Floor((x-a.offX)*a.scaleX))
	iy:=int64(math.Floor((y-a.offY)*a.scaleY))
	if ix<0 { ix=0 }
	if iy<0 { iy=0 }
	if ix>=numBins { ix=numBins-1 }
	if iy>=numBins { iy=numBins-1 }
	a.matrix[ix][iy]++

	a.sumX +=x
	a.sumY +=y
	a.sumXX+=x*x
	a.sumYY+=y*y
	a.sumXY+=x*y
	a.n++
	return nil
}

// Returns the number of pixel pairs accumulated so far
func (a *JointAccum) N() uint64 { return a.n }

// Derives the Pearson correlation coefficient of the two bands from the
// running sums, r = (n*Σxy - Σx*Σy) / sqrt((n*Σx²-(Σx)²)*(n*Σy²-(Σy)²)).
// When either band is constant its variance term vanishes and no linear
// relationship exists; that degenerate case yields 0 rather than NaN
func (a *JointAccum) Correlation() float64 {
	if a.n==0 { return 0 }
	n:=float64(a.n)
	varX:=n*a.sumXX-a.sumX*a.sumX
	varY:=n*a.sumYY-a.sumY*a.sumY
	if varX<=0 || varY<=0 { return 0 }
	return (n*a.sumXY-a.sumX*a.sumY)/math.Sqrt(varX*varY)
}

func (a *JointAccum) Fork() calc.Forker {
	f:=*a
	f.matrix=make([][]float64, len(a.matrix))
	for i,_:=range f.matrix {
		f.matrix[i]=make([]float64, len(a.matrix))
	}
	f.sumX, f.sumY, f.sumXX, f.sumYY, f.sumXY, f.n=0, 0, 0, 0, 0, 0
	return &f
}

func (a *JointAccum) Join(partial calc.Forker) error {
	p, ok:=partial.(*JointAccum)
	if !ok || len(p.matrix)!=len(a.matrix) {
		return fmt.Errorf("%w: cannot join foreign partial", ErrBinSpec)
	}
	for i, row:=range p.matrix {
		for j, c:=range row {
			a.matrix[i][j]+=c
		}
	}
	a.sumX +=p.sumX
	a.sumY +=p.sumY
	a.sumXX+=p.sumXX
	a.sumYY+=p.sumYY
	a.sumXY+=p.sumXY
	a.n    +=p.n
	return nil
}
