package regionfsm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSpecMatch(t *testing.T) {
	a := NewRegion("a", 0, 0, 1, 1, "")
	b := NewRegion("b", 1, 0, 1, 1, "")
	lookup := func(name string) *Region {
		switch name {
		case "a":
			return a
		case "b":
			return b
		}
		return nil
	}

	tests := []struct {
		name     string
		kind     EventKind
		region   string
		evKind   EventKind
		evRegion *Region
		want     bool
	}{
		{"press on bound region", Press, "a", Press, a, true},
		{"press on another region", Press, "a", Press, b, false},
		{"kind mismatch", Press, "a", Release, a, false},
		{"star wildcard", Enter, "*", Enter, b, true},
		{"empty wildcard", Enter, "", Enter, a, true},
		{"wildcard needs a region", Press, "*", Press, nil, false},
		{"release_none", ReleaseNone, "", ReleaseNone, nil, true},
		{"release_none ignores region name", ReleaseNone, "a", ReleaseNone, nil, true},
		{"release_none vs release", ReleaseNone, "", Release, a, false},
		{"any on bound region", Any, "a", Exit, a, true},
		{"any on another region", Any, "a", Exit, b, false},
		{"any bound vs regionless", Any, "a", ReleaseNone, nil, false},
		{"any wildcard", Any, "*", MoveInside, b, true},
		{"any wildcard regionless", Any, "*", ReleaseNone, nil, true},
		{"nevermatch", NeverMatch, "", NeverMatch, nil, false},
		{"nevermatch with region", NeverMatch, "a", Press, a, false},
		{"unresolved region", Press, "missing", Press, a, false},
		{"unresolved any", Any, "missing", Press, a, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &EventSpec{kind: tt.kind, regionName: tt.region}
			s.bind(lookup)
			assert.Equal(t, tt.want, s.Match(tt.evKind, tt.evRegion))
			// Matching has no side effects.
			assert.Equal(t, tt.want, s.Match(tt.evKind, tt.evRegion))
		})
	}
}

func TestEventSpecBinding(t *testing.T) {
	a := NewRegion("a", 0, 0, 1, 1, "")
	lookup := func(name string) *Region {
		if name == "a" {
			return a
		}
		return nil
	}

	s := &EventSpec{kind: Press, regionName: "a"}
	require.True(t, s.bind(lookup))
	assert.Equal(t, BoundRegion, s.Binding())
	assert.Same(t, a, s.Region())

	s = &EventSpec{kind: Exit, regionName: "*"}
	require.True(t, s.bind(lookup))
	assert.Equal(t, BoundWildcard, s.Binding())
	assert.Nil(t, s.Region())
	assert.Equal(t, "exit(*)", s.String())

	s = &EventSpec{kind: ReleaseNone}
	require.True(t, s.bind(lookup))
	assert.Equal(t, Unbound, s.Binding())
	assert.Equal(t, "release_none", s.String())

	s = &EventSpec{kind: Enter, regionName: "nope"}
	assert.False(t, s.bind(lookup))
	assert.Equal(t, BindFailed, s.Binding())
}

func TestEventKindText(t *testing.T) {
	for k := NeverMatch; k <= Any; k++ {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got EventKind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	_, ok := ParseEventKind("click")
	assert.False(t, ok)

	var k EventKind
	assert.Error(t, k.UnmarshalText([]byte("click")))
	_, err := EventKind(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}

func TestEventString(t *testing.T) {
	r := NewRegion("button", 0, 0, 1, 1, "")
	assert.Equal(t, "press(button)", Event{Kind: Press, Region: r}.String())
	assert.Equal(t, "release_none", Event{Kind: ReleaseNone}.String())
}

func TestActionBinding(t *testing.T) {
	r := NewRegion("logo", 0, 0, 1, 1, "")
	lookup := func(name string) *Region {
		if name == "logo" {
			return r
		}
		return nil
	}

	a := &Action{kind: SetImage, regionName: "logo", param: "x.png"}
	require.True(t, a.bind(lookup))
	assert.False(t, a.Inert())
	assert.Same(t, r, a.Region())
	assert.Equal(t, `set_image(logo, "x.png")`, a.String())

	a = &Action{kind: ClearImage, regionName: "*"}
	assert.False(t, a.bind(lookup), "actions never take a wildcard")
	assert.True(t, a.Inert())

	a = &Action{kind: Print, param: "hi"}
	require.True(t, a.bind(lookup))
	assert.Equal(t, Unbound, a.Binding())

	a = &Action{kind: ActNone}
	require.True(t, a.bind(lookup))
	assert.True(t, a.Inert())
}

func TestActionExecutePrint(t *testing.T) {
	r := NewRegion("button", 0, 0, 1, 1, "")
	var out bytes.Buffer

	(&Action{kind: Print, param: "hello"}).Execute(Event{Kind: Press, Region: r}, &out)
	(&Action{kind: PrintEvent, param: "saw"}).Execute(Event{Kind: Press, Region: r}, &out)
	(&Action{kind: PrintEvent, param: "saw"}).Execute(Event{Kind: ReleaseNone}, &out)
	(&Action{kind: ActNone, param: "ignored"}).Execute(Event{Kind: Press, Region: r}, &out)

	assert.Equal(t, "hello\nsaw press(button)\nsaw release_none\n", out.String())
}

func TestActionKindText(t *testing.T) {
	for k := ActNone; k <= PrintEvent; k++ {
		text, err := k.MarshalText()
		require.NoError(t, err)
		got, ok := ParseActionKind(string(text))
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	var k ActionKind
	assert.Error(t, k.UnmarshalText([]byte("explode")))
}
