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


package noise

import (
	"fmt"
	"math"
	"github.com/mlnoga/rastercalc/calc"
	"github.com/mlnoga/rastercalc/rnd"
)

// A Uniform visitor perturbs every band value with additive noise drawn
// uniformly from [-scale, +scale). The output band count must equal the
// input band count; a mismatch is a configuration error, not a fill policy.
// Randomness is consumed sequentially, so results depend on visitation
// order; use a fixed seed for reproducible output.
type Uniform struct {
	numOutBands int
	scale       float64
	src         *rnd.Source
}

// Creates a uniform noise visitor producing numOutBands output bands,
// perturbing by at most scale in native units
func NewUniform(numOutBands int, scale float32, src *rnd.Source) *Uniform {
	return &Uniform{numOutBands: numOutBands, scale: float64(scale), src: src}
}

func (n *Uniform) OutBands() int { return n.numOutBands }

func (n *Uniform) Visit(bands []float32, out []float64) error {
	if len(bands)!=n.numOutBands {
		return fmt.Errorf("%w: visited with %d bands, configured for %d output bands", calc.ErrBandCount, len(bands), n.numOutBands)
	}
	for b, v:=range bands {
		out[b]=float64(v)+n.src.Uniform(-n.scale, n.scale)
	}
	return nil
}

// A GaussianPercent visitor perturbs every band value with zero-mean gaussian
// noise whose standard deviation is scale times the magnitude of the value
// itself, so brighter pixels receive proportionally larger noise. A zero
// input value yields a zero perturbation.
type GaussianPercent struct {
	numOutBands int
	scale       float64
	src         *rnd.Source
}

// Creates a percentage-scaled gaussian noise visitor. scale is the fraction
// of each pixel value used as the perturbation's standard deviation
func NewGaussianPercent(numOutBands int, scale float32, src *rnd.Source) *GaussianPercent {
	return &GaussianPercent{numOutBands: numOutBands, scale: float64(scale), src: src}
}

func (n *GaussianPercent) OutBands() int { return n.numOutBands }

func (n *GaussianPercent) Visit(bands []float32, out []float64) error {
	if len(bands)!=n.numOutBands {
		return fmt.Errorf("%w: visited with %d bands, configured for %d output bands", calc.ErrBandCount, len(bands), n.numOutBands)
	}
	for b, v:=range bands {
		out[b]=float64(v)+n.src.Gaussian(0, n.scale*math.Abs(float64(v)))
	}
	return nil
}
