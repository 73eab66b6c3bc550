package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var errNoAsset = errors.New("loader returned no asset")

// ErrUnsupportedScheme is returned by SchemeLoader for locators it cannot route.
var ErrUnsupportedScheme = errors.New("unsupported locator scheme")

// FileLoader decodes images from the local filesystem. Relative locators are
// resolved against Dir.
type FileLoader struct {
	Dir string
}

func (l FileLoader) Load(ctx context.Context, locator string) (*Asset, error) {
	path := strings.TrimPrefix(locator, "file://")
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decode(locator, f)
}

// HTTPLoader fetches images over http and https.
type HTTPLoader struct {
	Client *http.Client
}

func (l HTTPLoader) Load(ctx context.Context, locator string) (*Asset, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", locator, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", locator, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %s", locator, resp.Status)
	}
	return decode(locator, resp.Body)
}

// SchemeLoader routes a locator to a Loader by its URL scheme. Locators
// without a scheme go to the "" entry.
type SchemeLoader map[string]Loader

func (m SchemeLoader) Load(ctx context.Context, locator string) (*Asset, error) {
	scheme := ""
	if u, err := url.Parse(locator); err == nil && len(u.Scheme) > 1 {
		scheme = strings.ToLower(u.Scheme)
	}
	l, ok := m[scheme]
	if !ok {
		return nil, fmt.Errorf("%s: %w", locator, ErrUnsupportedScheme)
	}
	return l.Load(ctx, locator)
}

// DefaultHTTPTimeout bounds http(s) fetches made by DefaultLoader.
const DefaultHTTPTimeout = 30 * time.Second

// DefaultLoader reads plain paths and file:// locators below dir and fetches
// http(s) locators with DefaultHTTPTimeout.
func DefaultLoader(dir string) Loader {
	return NewSchemeLoader(dir, DefaultHTTPTimeout)
}

// NewSchemeLoader routes plain paths and file:// locators to a FileLoader
// rooted at dir and http(s) locators to an HTTPLoader with the given timeout.
func NewSchemeLoader(dir string, timeout time.Duration) SchemeLoader {
	web := HTTPLoader{Client: &http.Client{Timeout: timeout}}
	file := FileLoader{Dir: dir}
	return SchemeLoader{
		"":      file,
		"file":  file,
		"http":  web,
		"https": web,
	}
}

func decode(locator string, r io.Reader) (*Asset, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", locator, err)
	}
	return NewAsset(locator, img), nil
}
