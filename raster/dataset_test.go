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
	"testing"
)

func TestNewDataset(t *testing.T) {
	d:=NewDataset(7, 11, 3)
	if d.NumBands()!=3 { t.Errorf("NumBands()=%d; want 3", d.NumBands()) }
	if d.Pixels()!=77 { t.Errorf("Pixels()=%d; want 77", d.Pixels()) }
	for b:=int32(0); b<d.NumBands(); b++ {
		if len(d.Bands[b])!=77 { t.Errorf("len(Bands[%d])=%d; want 77", b, len(d.Bands[b])) }
	}
}

func TestNewDatasetFromBands(t *testing.T) {
	b0:=make([]float32, 6)
	b1:=make([]float32, 6)
	d, err:=NewDatasetFromBands(3, 2, b0, b1)
	if err!=nil { t.Fatalf("NewDatasetFromBands()=%s; want success", err.Error()) }
	if d.NumBands()!=2 { t.Errorf("NumBands()=%d; want 2", d.NumBands()) }

	_, err=NewDatasetFromBands(3, 3, b0, b1)
	if err==nil { t.Errorf("NewDatasetFromBands() with short bands succeeded; want error") }
}

func TestAtSetAt(t *testing.T) {
	d:=NewDataset(4, 3, 2)
	d.SetAt(1, 2, 1, 42)
	if d.At(1, 2, 1)!=42 { t.Errorf("At(1,2,1)=%f; want 42", d.At(1, 2, 1)) }
	if d.Bands[1][1*4+2]!=42 { t.Errorf("Bands[1][6]=%f; want 42", d.Bands[1][6]) }
	if d.At(0, 2, 1)!=0 { t.Errorf("At(0,2,1)=%f; want 0", d.At(0, 2, 1)) }
}

func TestSameDims(t *testing.T) {
	a:=NewDataset(4, 3, 1)
	b:=NewDataset(4, 3, 5)
	c:=NewDataset(3, 4, 1)
	if !a.SameDims(b) { t.Errorf("SameDims() false for equal grids") }
	if a.SameDims(c) { t.Errorf("SameDims() true for differing grids") }
}
