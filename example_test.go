package regionfsm_test

import (
	"fmt"
	"os"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/diag"
)

func Example() {
	loose, err := regionfsm.Parse([]byte(`
regions:
  - {name: button, x: 0, y: 0, w: 10, h: 2}
states:
  - name: idle
    transitions:
      - target: armed
        onEvent: {evtType: press, region: button}
        actions: [{act: print_event, param: got}]
  - name: armed
    transitions:
      - target: idle
        onEvent: {evtType: release, region: button}
        actions: [{act: print, param: clicked}]
      - target: idle
        onEvent: {evtType: release_none}
        actions: [{act: print, param: cancelled}]
`), regionfsm.FormatYAML)
	if err != nil {
		panic(err)
	}

	m, err := regionfsm.Build(loose, regionfsm.WithOutput(os.Stdout), regionfsm.WithReporter(diag.NewCollector(nil)))
	if err != nil {
		panic(err)
	}
	d := regionfsm.NewDispatcher(m)

	d.Press(3, 1)
	d.Release(3, 1)
	d.Press(3, 1)
	d.Release(30, 1)
	fmt.Println("state:", m.Current().Name())

	// Output:
	// got press(button)
	// clicked
	// got press(button)
	// cancelled
	// state: idle
}
