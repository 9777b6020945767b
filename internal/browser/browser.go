package browser

import (
	"fmt"
	"time"

	"github.com/v0xg/pageaction/internal/action"
)

const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

// Options configures the browser session
type Options struct {
	Driver     string
	Headless   bool
	Width      int
	Height     int
	Timeout    time.Duration
	ProfileDir string // Chrome/Chromium profile directory for authenticated sessions
}

// PageInfo describes the page a session is showing
type PageInfo struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Session owns a browser and the single page actions run against
type Session interface {
	// Page returns the action capability for the current tab
	Page() action.Page
	Navigate(url string) error
	Info() (PageInfo, error)
	// Screenshot returns a PNG of the current viewport
	Screenshot() ([]byte, error)
	Close() error
}

func (o Options) withDefaults() Options {
	if o.Driver == "" {
		o.Driver = DriverRod
	}
	if o.Width == 0 {
		o.Width = 1280
	}
	if o.Height == 0 {
		o.Height = 720
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// Launch starts a browser with the configured driver and opens url
func Launch(url string, opts Options) (Session, error) {
	opts = opts.withDefaults()

	switch opts.Driver {
	case DriverRod:
		return launchRod(url, opts)
	case DriverPlaywright:
		return launchPlaywright(url, opts)
	default:
		return nil, fmt.Errorf("unsupported browser driver: %s (supported: rod, playwright)", opts.Driver)
	}
}
