// Command fsmcheck builds region FSM documents and reports their diagnostics.
//
// Usage:
//
//	fsmcheck [-dot] [-json] [-images] [-quiet] doc.yaml [more.json ...]
//
// With -images every image locator is loaded, relative to the document's
// directory, and failures are reported as asset diagnostics.
//
// The exit status is 1 when any document has diagnostics and 2 on usage or
// read errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/diag"
	"github.com/comalice/regionfsm/internal/production"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	dot     bool
	json    bool
	quiet   bool
	images  bool
	timeout time.Duration
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fsmcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.BoolVar(&opts.dot, "dot", false, "print the bound FSM as Graphviz DOT")
	fs.BoolVar(&opts.json, "json", false, "print the normalized document as JSON")
	fs.BoolVar(&opts.quiet, "quiet", false, "only set the exit status")
	fs.BoolVar(&opts.images, "images", false, "load every image and report failures")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "how long -images waits for loads")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "fsmcheck: no documents given")
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	status := 0
	for _, path := range fs.Args() {
		n, err := check(path, opts, stdout, logger)
		if err != nil {
			fmt.Fprintf(stderr, "fsmcheck: %v\n", err)
			return 2
		}
		if n > 0 {
			status = 1
		}
	}
	return status
}

// check builds one document and returns how many diagnostics it raised.
func check(path string, opts options, stdout io.Writer, logger *slog.Logger) (int, error) {
	loose, err := regionfsm.ParseFile(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	col := diag.NewCollector(nil)
	doc := regionfsm.Decode(loose, col)
	m, err := regionfsm.NewFSM(doc,
		regionfsm.WithReporter(col),
		regionfsm.WithLogger(logger),
		regionfsm.WithAssetCache(imageCache(path, opts.images)),
		regionfsm.WithOutput(io.Discard),
	)
	if err != nil {
		return 0, err
	}
	if opts.images {
		for _, r := range awaitImages(m, opts.timeout) {
			col.Report(diag.Diagnostic{
				Kind:    diag.Asset,
				Path:    r.ImageLocPath(),
				Message: fmt.Sprintf("load %q: timed out", r.ImageLoc()),
				Value:   r.ImageLoc(),
			})
		}
	}

	if !opts.quiet {
		for _, d := range col.Diagnostics() {
			fmt.Fprintf(stdout, "%s: %s\n", path, d.Error())
		}
		if col.Len() == 0 {
			fmt.Fprintf(stdout, "%s: ok (%d regions, %d states)\n", path, len(m.Regions()), len(m.States()))
		}
	}

	v := &production.DefaultVisualizer{}
	if opts.json {
		data, err := v.ExportJSON(doc)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(stdout, "%s\n", data)
	}
	if opts.dot {
		fmt.Fprint(stdout, v.ExportDOT(m))
	}
	return col.Len(), nil
}
