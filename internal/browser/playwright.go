package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/v0xg/pageaction/internal/action"
)

// playwrightSession drives Chromium through the Playwright driver
type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser // nil for persistent profiles
	context playwright.BrowserContext
	page    playwright.Page
	timeout time.Duration
}

// playwrightPage adapts a Playwright page to action.Page
type playwrightPage struct {
	page playwright.Page
}

func launchPlaywright(url string, opts Options) (Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright (ensure drivers are installed: npx playwright install): %w", err)
	}

	s := &playwrightSession{pw: pw, timeout: opts.Timeout}
	size := &playwright.Size{Width: opts.Width, Height: opts.Height}

	if opts.ProfileDir != "" {
		s.context, err = pw.Chromium.LaunchPersistentContext(opts.ProfileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless: playwright.Bool(opts.Headless),
			Viewport: size,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
	} else {
		s.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(opts.Headless),
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		s.context, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
			Viewport: size,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to create browser context: %w", err)
		}
	}

	s.page, err = s.context.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if url != "" {
		if err := s.Navigate(url); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

func (s *playwrightSession) Page() action.Page {
	return &playwrightPage{page: s.page}
}

func (s *playwrightSession) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(s.timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) Info() (PageInfo, error) {
	title, err := s.page.Title()
	if err != nil {
		return PageInfo{}, err
	}

	info := PageInfo{URL: s.page.URL(), Title: title}
	if size := s.page.ViewportSize(); size != nil {
		info.Width = size.Width
		info.Height = size.Height
	}
	return info, nil
}

func (s *playwrightSession) Screenshot() ([]byte, error) {
	return s.page.Screenshot(playwright.PageScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
}

func (s *playwrightSession) Close() error {
	var errs []error
	if s.page != nil {
		errs = append(errs, s.page.Close())
	}
	if s.context != nil {
		errs = append(errs, s.context.Close())
	}
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
	}
	if s.pw != nil {
		errs = append(errs, s.pw.Stop())
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *playwrightPage) Press(key string) error {
	return p.page.Keyboard().Press(key)
}

func (p *playwrightPage) Wait(d time.Duration) error {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
	return nil
}

func (p *playwrightPage) SetViewport(width, height int) error {
	return p.page.SetViewportSize(width, height)
}
