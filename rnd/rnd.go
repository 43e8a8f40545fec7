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


package rnd

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Source supplies uniformly and normally distributed pseudo-random scalars
// for synthetic value generation. Construct one seeded instance per consumer
// and reuse it for all draws in a pass; re-seeding per pixel destroys the
// statistical validity of the output. Draws are sequential and a Source is
// not safe for concurrent use. Not cryptographically secure; a fixed seed
// yields a reproducible sequence.
type Source struct {
	src rand.Source
}

// Creates a source seeded with the given value
func NewSource(seed uint64) *Source {
	return &Source{src: rand.NewSource(seed)}
}

// Draws a value uniformly distributed in [low, high)
func (s *Source) Uniform(low, high float64) float64 {
	return distuv.Uniform{Min: low, Max: high, Src: s.src}.Rand()
}

// Draws a normally distributed value with given mean and standard deviation.
// A zero stdDev degenerates the draw to exactly mean
func (s *Source) Gaussian(mean, stdDev float64) float64 {
	if stdDev==0 { return mean }
	return distuv.Normal{Mu: mean, Sigma: stdDev, Src: s.src}.Rand()
}
