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
	"math"
	"gonum.org/v1/gonum/optimize"
)

// Returns the center of the fullest bin and its count
func Peak(bins []uint32, min, max float64) (x, y float64) {
	maxIndex, maxValue:=0, uint32(0)
	for i, v:=range bins {
		if v>maxValue {
			maxIndex, maxValue=i, v
		}
	}
	binWidth:=(max-min)/float64(len(bins))
	return min+(float64(maxIndex)+0.5)*binWidth, float64(maxValue)
}

// Estimates the mode and standard deviation of the distribution underlying
// a 1-D histogram by least-squares fitting a gaussian to the bin counts
// with Nelder-Mead
func ModeStdDev(bins []uint32, min, max float64) (mode, stdDev float64, err error) {
	if len(bins)==0 {
		return -1, -1, ErrBinSpec
	}

	// Take an educated initial guess: the maximum value of the histogram
	peak, peakVal:=Peak(bins, min, max)
	sigma0:=(max-min)*0.1
	binWidth:=(max-min)/float64(len(bins))

	// Now minimize the distance between the histogram and a normal distribution
	x0:=[]float64{peakVal, peak, sigma0}
	problem:=optimize.Problem{
		Func: func(x []float64) float64 {
			alpha, mu, sigma:=x[0], x[1], x[2]
			scaler:=alpha/(sigma*math.Sqrt(2*math.Pi))
			sumSqDiff:=float64(0)

			for i, y:=range bins {
				x:=min+(float64(i)+0.5)*binWidth

				xmusig:=(x-mu)/sigma
				yPredict:=scaler*math.Exp(-0.5*xmusig*xmusig)

				diff:=float64(y)-yPredict
				sumSqDiff+=diff*diff
			}
			variance:=sumSqDiff/float64(len(bins))
			return math.Sqrt(variance)
		},
	}
	result, err:=optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err!=nil {
		return -1, -1, err
	}

	return result.X[1], math.Abs(result.X[2]), nil
}
