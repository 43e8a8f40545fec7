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


package stats

import (
	"fmt"
	"math"
	"github.com/valyala/fastrand"
)

// Basic statistics on a band data array
type Stats struct {
	Min    float32 // Minimum
	Max    float32 // Maximum
	Mean   float32 // Mean (average)
	StdDev float32 // Standard deviation (norm 2, sigma)
}

// Pretty print basic stats to string
func (s *Stats) String() string {
	return fmt.Sprintf("Min %.6g Max %.6g Mean %.6g StdDev %.6g", s.Min, s.Max, s.Mean, s.StdDev)
}

// Calculate basic statistics for a band data array.
// An empty array yields all-zero stats
func Calc(data []float32) *Stats {
	if len(data)==0 { return &Stats{} }
	min, mean, max:=calcMinMeanMax(data)
	variance:=calcVariance(data, mean)
	return &Stats{
		Min   : min,
		Max   : max,
		Mean  : mean,
		StdDev: float32(math.Sqrt(float64(variance))),
	}
}

func calcMinMeanMax(data []float32) (min, mean, max float32) {
	mmin, msum, mmax:=data[0], float64(0), data[0]
	for _, v:=range data {
		if v<mmin { mmin=v }
		if v>mmax { mmax=v }
		msum+=float64(v)
	}
	return mmin, float32(msum/float64(len(data))), mmax
}

func calcVariance(data []float32, mean float32) float64 {
	variance:=float64(0)
	for _, v:=range data {
		diff:=float64(v-mean)
		variance+=diff*diff
	}
	return variance/float64(len(data))
}

// Calculates fast approximate mean and standard deviation of the (presumably
// large) data by subsampling the given number of values
func FastApproxMeanStdDev(data []float32, numSamples int) (mean, stdDev float32) {
	max:=uint32(len(data))
	rng:=fastrand.RNG{}
	sum:=float32(0)
	for i:=0; i<numSamples; i++ {
		sum+=data[rng.Uint32n(max)]
	}
	mean=sum/float32(numSamples)

	rng=fastrand.RNG{}
	sumSqDiff:=float32(0)
	for i:=0; i<numSamples; i++ {
		diff:=data[rng.Uint32n(max)]-mean
		sumSqDiff+=diff*diff
	}
	variance:=sumSqDiff/float32(numSamples)
	return mean, float32(math.Sqrt(float64(variance)))
}
