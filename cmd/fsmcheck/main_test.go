package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCleanDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.yaml", `
regions: [{name: b, x: 0, y: 0, w: 1, h: 1, imageLoc: nowhere.png}]
states: [{name: s, transitions: [{target: s, onEvent: {evtType: press, region: b}}]}]
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, path+": ok (1 regions, 1 states)\n", stdout.String())
}

func TestCheckReportsDiagnostics(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.json", `{
		"regions": [{"name": "b"}, {"name": "b"}],
		"states": [{"name": "s", "transitions": [{"target": "t", "onEvent": {"evtType": "press", "region": "b"}}]}]
	}`)
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), path+": duplicate: regions[1].name: ")
	assert.Contains(t, stdout.String(), path+`: reference: states[0].transitions[0].target: unknown state "t"`)

	stdout.Reset()
	assert.Equal(t, 1, run([]string{"-quiet", path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestCheckDotAndJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.yaml", `
regions: [{name: b, x: 0, y: 0, w: 1, h: 1}]
states: [{name: s, transitions: [{target: s, onEvent: {evtType: release_none}}]}]
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"-dot", "-json", "-quiet", path}, &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), `"evtType": "release_none"`)
	assert.Contains(t, stdout.String(), `"state:s" -> "state:s" [label="release_none"];`)
}

func TestCheckImages(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	writeFile(t, dir, "good.png", buf.String())
	path := writeFile(t, dir, "doc.yaml", `
regions:
  - {name: good, x: 0, y: 0, imageLoc: good.png}
  - {name: bad, x: 9, y: 0, w: 1, h: 1, imageLoc: missing.png}
states: [{name: s}]
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"-images", path}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), path+`: asset: regions[1].imageLoc: load "missing.png": `)
	assert.NotContains(t, stdout.String(), "regions[0]")
}

func TestUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-bogus"}, &stdout, &stderr))
}
