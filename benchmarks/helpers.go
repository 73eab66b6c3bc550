// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/assets"
	"github.com/comalice/regionfsm/builder"
	"github.com/comalice/regionfsm/diag"
)

// Quiet returns build options that keep benchmarks off the shared cache,
// the default reporter and stdout.
func Quiet() []regionfsm.Option {
	return []regionfsm.Option{
		regionfsm.WithReporter(diag.NewSink(diag.Drop, nil)),
		regionfsm.WithAssetCache(assets.NewCache(assets.SchemeLoader{})),
		regionfsm.WithOutput(io.Discard),
	}
}

// GenFlatDoc creates n states cycling on presses over a single region.
func GenFlatDoc(n int) *builder.Doc {
	if n < 1 {
		n = 1
	}
	d := builder.New().Region("pad", 0, 0, 10, 10, "")
	for i := 0; i < n; i++ {
		d.State(fmt.Sprintf("s%d", i), builder.On(regionfsm.Press, "pad", fmt.Sprintf("s%d", (i+1)%n)))
	}
	return d
}

// GenGridDoc creates an n×n grid of unit regions and one state that loops on
// any event over any region.
func GenGridDoc(n int) *builder.Doc {
	if n < 1 {
		n = 1
	}
	d := builder.New()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			d.Region(fmt.Sprintf("r%d_%d", x, y), float64(x), float64(y), 1, 1, "")
		}
	}
	return d.State("idle", builder.On(regionfsm.Any, regionfsm.Wildcard, "idle"))
}

// GenWideTransitions creates one main state whose only matching transition
// is the last of numTransitions, so every step scans the whole list.
func GenWideTransitions(numTransitions int) *builder.Doc {
	if numTransitions < 1 {
		numTransitions = 1
	}
	d := builder.New().Region("pad", 0, 0, 10, 10, "").Region("other", 20, 0, 10, 10, "")
	opts := make([]builder.Option, 0, numTransitions)
	for i := 0; i < numTransitions-1; i++ {
		opts = append(opts, builder.On(regionfsm.Release, "other", "main"))
	}
	opts = append(opts, builder.On(regionfsm.Press, "pad", "main"))
	return d.State("main", opts...)
}

// GenDocYAML renders the flat document with numStates states as YAML.
func GenDocYAML(numStates int) []byte {
	data, err := yaml.Marshal(GenFlatDoc(numStates).Document())
	if err != nil {
		panic(err)
	}
	return data
}
