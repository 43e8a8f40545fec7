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
	"runtime"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
)

// An execution context for raster passes
type Context struct {
	MaxThreads    int // Maximum worker goroutines for partitioned passes
	MemoryMB      int // memory.TotalMemory()/1024/1024
	WorkMemoryMB  int // MemoryMB*7/10, headroom for accumulator partials
}

// Creates an execution context with defaults derived from the machine:
// one worker per logical core, and a working memory budget of 70% of
// physical memory
func NewContext() *Context {
	threads:=cpuid.CPU.LogicalCores
	if threads<=0 { threads=runtime.GOMAXPROCS(0) }
	memoryMB:=int(memory.TotalMemory()/1024/1024)
	return &Context{
		MaxThreads  : threads,
		MemoryMB    : memoryMB,
		WorkMemoryMB: memoryMB*7/10,
	}
}
