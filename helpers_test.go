package regionfsm_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/builder"
	"github.com/comalice/regionfsm/diag"
	"github.com/comalice/regionfsm/testutil"
)

// rig is an FSM wired to in-memory fakes.
type rig struct {
	m    *FSM
	stub *testutil.StubLoader
	col  *diag.Collector
	out  *bytes.Buffer
	dmg  *testutil.DamageCounter
}

func newRig(t *testing.T, d *builder.Doc, stub *testutil.StubLoader, opts ...Option) *rig {
	t.Helper()
	if stub == nil {
		stub = testutil.NewStubLoader()
	}
	r := &rig{
		stub: stub,
		col:  diag.NewCollector(nil),
		out:  &bytes.Buffer{},
		dmg:  &testutil.DamageCounter{},
	}
	base := []Option{
		WithReporter(r.col),
		WithOutput(r.out),
		WithAssetCache(stub.Cache()),
	}
	m, err := d.Build(append(base, opts...)...)
	require.NoError(t, err)
	m.SetHost(r.dmg)
	r.m = m
	return r
}

// settle drains asset continuations until no region is waiting on a load.
func (r *rig) settle(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool {
		r.m.AssetQueue().Drain()
		for _, reg := range r.m.Regions() {
			if reg.AssetStatus() == AssetPending {
				return false
			}
		}
		return true
	}, time.Second, time.Millisecond)
}

func (r *rig) region(t *testing.T, name string) *Region {
	t.Helper()
	reg := r.m.Region(name)
	require.NotNil(t, reg, "region %q", name)
	return reg
}
