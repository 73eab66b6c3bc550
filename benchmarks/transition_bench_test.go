// Package benchmarks provides performance benchmarks for stepping and
// dispatch.
package benchmarks

import (
	"fmt"
	"testing"

	"github.com/comalice/regionfsm"
)

func build(b *testing.B, doc regionfsm.Document) *regionfsm.FSM {
	b.Helper()
	m, err := regionfsm.NewFSM(doc, Quiet()...)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

func BenchmarkFlatStep(b *testing.B) {
	for _, n := range []int{2, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			m := build(b, GenFlatDoc(n).Document())
			pad := m.Region("pad")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !m.Step(regionfsm.Press, pad) {
					b.Fatal("press not taken")
				}
			}
		})
	}
}

func BenchmarkWideTransitions(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("transitions=%d", n), func(b *testing.B) {
			m := build(b, GenWideTransitions(n).Document())
			pad := m.Region("pad")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !m.Step(regionfsm.Press, pad) {
					b.Fatal("press not taken")
				}
			}
		})
	}
}

func BenchmarkGridDispatch(b *testing.B) {
	for _, n := range []int{4, 16, 32} {
		b.Run(fmt.Sprintf("regions=%d", n*n), func(b *testing.B) {
			d := regionfsm.NewDispatcher(build(b, GenGridDoc(n).Document()))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				x := float64(i%n) + 0.5
				y := float64((i/n)%n) + 0.5
				d.Move(x, y)
			}
		})
	}
}

func BenchmarkParseYAML(b *testing.B) {
	for _, n := range []int{10, 100} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			data := GenDocYAML(n)
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := regionfsm.Build(mustParse(b, data), Quiet()...); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func mustParse(b *testing.B, data []byte) any {
	loose, err := regionfsm.Parse(data, regionfsm.FormatYAML)
	if err != nil {
		b.Fatal(err)
	}
	return loose
}
