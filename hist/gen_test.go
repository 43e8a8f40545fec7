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
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"github.com/mlnoga/rastercalc/raster"
)

func TestWriteHistogram(t *testing.T) {
	mask:=raster.NewDataset(4, 2, 1)
	img :=raster.NewDataset(4, 2, 1)
	copy(mask.Bands[0], []float32{0, 0, 0, 0, 0, 0, 0, 255})
	copy(img.Bands[0],  []float32{0, 1.9, 2.0, 9.99, 10.0, -5, 3, 3})  // final 3 is masked out

	fileName:=filepath.Join(t.TempDir(), "hist.txt")
	g:=NewGen(nil)
	if err:=g.WriteHistogram(fileName, 1, 0, 10, 255, 2, mask, img); err!=nil {
		t.Fatalf("WriteHistogram()=%s; want success", err.Error())
	}

	raw, err:=os.ReadFile(fileName)
	if err!=nil { t.Fatalf("ReadFile()=%s; want success", err.Error()) }
	lines:=strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines)!=5 { t.Fatalf("%d lines; want 5", len(lines)) }

	wantEdges:=[]float64{0, 2, 4, 6, 8}
	wantCounts:=[]uint64{3, 2, 0, 0, 2}
	for i, line:=range lines {
		fields:=strings.Fields(line)
		if len(fields)!=2 { t.Fatalf("line %d has %d fields; want 2", i, len(fields)) }
		edge, err:=strconv.ParseFloat(fields[0], 64)
		if err!=nil { t.Fatalf("line %d edge: %s", i, err.Error()) }
		count, err:=strconv.ParseUint(fields[1], 10, 32)
		if err!=nil { t.Fatalf("line %d count: %s", i, err.Error()) }
		if edge!=wantEdges[i] { t.Errorf("line %d edge=%f; want %f", i, edge, wantEdges[i]) }
		if count!=wantCounts[i] { t.Errorf("line %d count=%d; want %d", i, count, wantCounts[i]) }
	}
}

func TestWriteHistogramNoFileOnFailedPass(t *testing.T) {
	mask:=raster.NewDataset(4, 2, 1)
	img :=raster.NewDataset(4, 3, 1)  // misaligned grid, the pass must fail
	fileName:=filepath.Join(t.TempDir(), "hist.txt")
	g:=NewGen(nil)
	if err:=g.WriteHistogram(fileName, 1, 0, 10, 255, 2, mask, img); err==nil {
		t.Fatalf("WriteHistogram() on misaligned datasets succeeded; want error")
	}
	if _, err:=os.Stat(fileName); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("histogram file exists after failed pass; want no output")
	}
}

func TestHistogramOwnership(t *testing.T) {
	img:=raster.NewDataset(3, 2, 2)
	copy(img.Bands[1], []float32{0, 1.9, 2.0, 9.99, 10.0, -5})

	g:=NewGen(nil)
	counts, err:=g.Histogram(img, 1, 0, 10, 2)
	if err!=nil { t.Fatalf("Histogram()=%s; want success", err.Error()) }
	if len(counts)!=5 { t.Fatalf("len(counts)=%d; want 5", len(counts)) }

	want:=[]uint32{3, 1, 0, 0, 2}
	for i, w:=range want {
		if counts[i]!=w { t.Errorf("counts[%d]=%d; want %d", i, counts[i], w) }
	}
}

func TestHistogramRejectsBadSpec(t *testing.T) {
	img:=raster.NewDataset(3, 2, 1)
	g:=NewGen(nil)
	if _, err:=g.Histogram(img, 0, 10, 0, 2); !errors.Is(err, ErrBinSpec) {
		t.Errorf("Histogram()=%v; want ErrBinSpec", err)
	}
}

func TestHistogramAutoRange(t *testing.T) {
	img:=raster.NewDataset(32, 32, 1)
	for i,_:=range img.Bands[0] {
		img.Bands[0][i]=float32(i%100)
	}
	g:=NewGen(nil)
	counts, edges, err:=g.HistogramAutoRange(img, 0, 20)
	if err!=nil { t.Fatalf("HistogramAutoRange()=%s; want success", err.Error()) }
	if len(counts)!=len(edges) { t.Fatalf("len(counts)=%d, len(edges)=%d; want equal", len(counts), len(edges)) }

	sum:=uint32(0)
	for _, c:=range counts { sum+=c }
	if sum!=1024 { t.Errorf("bin sum=%d; want 1024 (conservation)", sum) }
	if edges[0]!=0 { t.Errorf("edges[0]=%f; want 0", edges[0]) }
}

func TestHistogramAutoRangeEmptyBand(t *testing.T) {
	img:=raster.NewDataset(0, 8, 1)
	g:=NewGen(nil)
	if _, _, err:=g.HistogramAutoRange(img, 0, 4); !errors.Is(err, ErrBinSpec) {
		t.Errorf("HistogramAutoRange() on empty band=%v; want ErrBinSpec", err)
	}
}

// A constant band large enough for the subsampled range estimate yields a
// zero standard deviation; the derived range must still be non-empty
func TestHistogramAutoRangeConstantBandSubsampled(t *testing.T) {
	img:=raster.NewDataset(1024, 1024, 1)
	for i,_:=range img.Bands[0] {
		img.Bands[0][i]=7
	}
	g:=NewGen(nil)
	counts, _, err:=g.HistogramAutoRange(img, 0, 4)
	if err!=nil { t.Fatalf("HistogramAutoRange()=%s; want success", err.Error()) }
	sum:=uint32(0)
	for _, c:=range counts { sum+=c }
	if sum!=1024*1024 { t.Errorf("bin sum=%d; want %d", sum, 1024*1024) }
}

func TestHistogramAutoRangeConstantBand(t *testing.T) {
	img:=raster.NewDataset(8, 8, 1)
	for i,_:=range img.Bands[0] {
		img.Bands[0][i]=7
	}
	g:=NewGen(nil)
	counts, _, err:=g.HistogramAutoRange(img, 0, 4)
	if err!=nil { t.Fatalf("HistogramAutoRange()=%s; want success", err.Error()) }
	sum:=uint32(0)
	for _, c:=range counts { sum+=c }
	if sum!=64 { t.Errorf("bin sum=%d; want 64", sum) }
}

func TestJoint2D(t *testing.T) {
	dsX:=raster.NewDataset(10, 10, 1)
	dsY:=raster.NewDataset(10, 10, 1)
	for i,_:=range dsX.Bands[0] {
		x:=float32(i)
		dsX.Bands[0][i]=x
		dsY.Bands[0][i]=2*x+3
	}

	numBins:=16
	matrix:=newMatrix(numBins)
	binsX:=make([]float64, numBins)
	binsY:=make([]float64, numBins)

	g:=NewGen(nil)
	r, err:=g.Joint2D(matrix, binsX, binsY, dsX, dsY, 0, 0, 16.0/100.0, 16.0/203.0, 0, 0)
	if err!=nil { t.Fatalf("Joint2D()=%s; want success", err.Error()) }
	if math.Abs(r-1)>1e-9 { t.Errorf("r=%.12f; want 1 within 1e-9", r) }

	sum:=float64(0)
	for _, row:=range matrix {
		for _, c:=range row { sum+=c }
	}
	if sum!=100 { t.Errorf("matrix sum=%f; want 100 (conservation)", sum) }

	if binsX[0]!=0 { t.Errorf("binsX[0]=%f; want 0", binsX[0]) }
	wantStepX:=100.0/16.0
	if math.Abs(binsX[1]-wantStepX)>1e-12 { t.Errorf("binsX[1]=%f; want %f", binsX[1], wantStepX) }
}

func TestJoint2DRejectsMismatchedBuffers(t *testing.T) {
	dsX:=raster.NewDataset(4, 4, 1)
	dsY:=raster.NewDataset(4, 4, 1)
	matrix:=newMatrix(8)
	g:=NewGen(nil)
	if _, err:=g.Joint2D(matrix, make([]float64, 7), make([]float64, 8), dsX, dsY, 0, 0, 1, 1, 0, 0); !errors.Is(err, ErrBinSpec) {
		t.Errorf("Joint2D()=%v; want ErrBinSpec", err)
	}
}
