package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/v0xg/pageaction/internal/action"
)

// rodSession wraps the Rod browser and page for reuse
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration
}

// rodPage adapts a Rod page to action.Page
type rodPage struct {
	page *rod.Page
}

func launchRod(url string, opts Options) (Session, error) {
	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(opts.Headless)

	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	s := &rodSession{launcher: l, browser: browser, timeout: opts.Timeout}

	page, err := browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	s.page = page

	if err := page.SetViewport(viewport(opts.Width, opts.Height)); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	if url != "" {
		if err := s.Navigate(url); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

func viewport(width, height int) *proto.EmulationSetDeviceMetricsOverride {
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}
}

func (s *rodSession) Page() action.Page {
	return &rodPage{page: s.page}
}

func (s *rodSession) Navigate(url string) error {
	page := s.page.Timeout(s.timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}

	// Don't hang on persistent connections (WebSockets, polling, etc.)
	idle := s.page.Timeout(5 * time.Second)
	defer idle.CancelTimeout()
	idle.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()
	return nil
}

func (s *rodSession) Info() (PageInfo, error) {
	info, err := s.page.Info()
	if err != nil {
		return PageInfo{}, err
	}

	size, err := s.page.Eval(`() => ({width: window.innerWidth, height: window.innerHeight})`)
	if err != nil {
		return PageInfo{}, err
	}

	return PageInfo{
		URL:    info.URL,
		Title:  info.Title,
		Width:  size.Value.Get("width").Int(),
		Height: size.Value.Get("height").Int(),
	}, nil
}

func (s *rodSession) Screenshot() ([]byte, error) {
	return s.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

// Close cleans up browser resources
func (s *rodSession) Close() error {
	var err error
	if s.page != nil {
		err = s.page.Close()
	}
	if s.browser != nil {
		if cerr := s.browser.Close(); err == nil {
			err = cerr
		}
	}
	if s.launcher != nil {
		s.launcher.Kill()
	}
	return err
}

func (p *rodPage) Press(key string) error {
	k, err := resolveKey(key)
	if errors.Is(err, errNoKeyCode) {
		// Characters outside rod's US layout have no key code, insert them as text
		return p.page.InsertText(key)
	}
	if err != nil {
		return err
	}
	return p.page.Keyboard.Type(k)
}

func (p *rodPage) Wait(d time.Duration) error {
	if d <= 0 {
		return nil
	}

	ctx := p.page.GetContext()
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *rodPage) SetViewport(width, height int) error {
	return p.page.SetViewport(viewport(width, height))
}
