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
)

// Reported when a visitor receives a band count differing from its configured expectation.
// Fatal to the current pass; the driver aborts rather than skipping pixels.
var ErrBandCount=errors.New("band count mismatch")

// A Visitor is the per-pixel callback through which all raster-wide algorithms
// are expressed. The driver calls Visit once per pixel location, passing the
// band values of all datasets in the pass concatenated in dataset order.
// Visitors may carry aggregation state across calls within one pass, but must
// not assume any particular visitation order. A visitor instance is not safe
// for concurrent calls; see Forker for partitioned parallel passes.
type Visitor interface {
	// Returns the number of output band values written per pixel, zero for pure aggregation
	OutBands() int

	// Processes one pixel. bands holds the concatenated band values of all
	// datasets; out is a driver-owned buffer of OutBands() values, nil when
	// OutBands() is zero
	Visit(bands []float32, out []float64) error
}

// A Forker is a visitor whose aggregation state can be partitioned across
// goroutines: each worker visits its share of the raster on a Fork copy,
// and the partials are folded back with Join after the pass ends.
type Forker interface {
	Visitor

	// Returns a fresh visitor with empty aggregation state and identical configuration
	Fork() Forker

	// Folds the aggregation state of a forked partial into the receiver
	Join(partial Forker) error
}
