// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/comalice/regionfsm"
)

func bytesPerFSM(b *testing.B, doc regionfsm.Document, numMachines int) uint64 {
	b.Helper()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	machines := make([]*regionfsm.FSM, numMachines)
	for i := range machines {
		m, err := regionfsm.NewFSM(doc, Quiet()...)
		if err != nil {
			b.Fatal(err)
		}
		machines[i] = m
	}
	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	runtime.KeepAlive(machines)
	return (after.TotalAlloc - before.TotalAlloc) / uint64(numMachines)
}

func BenchmarkMemoryFootprint(b *testing.B) {
	doc := GenFlatDoc(1).Document()
	for i := 0; i < b.N; i++ {
		b.ReportMetric(float64(bytesPerFSM(b, doc, 1000))/1024, "KB/fsm")
	}
}

func BenchmarkMemoryFlat(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			doc := GenFlatDoc(n).Document()
			for i := 0; i < b.N; i++ {
				b.ReportMetric(float64(bytesPerFSM(b, doc, 100))/1024, "KB/fsm")
			}
		})
	}
}

func BenchmarkMemoryGrid(b *testing.B) {
	for _, n := range []int{4, 16, 32} {
		b.Run(fmt.Sprintf("regions=%d", n*n), func(b *testing.B) {
			doc := GenGridDoc(n).Document()
			for i := 0; i < b.N; i++ {
				b.ReportMetric(float64(bytesPerFSM(b, doc, 100))/1024, "KB/fsm")
			}
		})
	}
}
