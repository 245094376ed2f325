package visual

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodConfig configures the browser used for screenshots.
type RodConfig struct {
	// ControlURL connects to a running Chrome instead of launching one.
	ControlURL string `env:"VISUAL_CONTROL_URL"`
	// Bin overrides the browser binary; empty lets rod find or download one.
	Bin         string        `env:"VISUAL_BROWSER_BIN"`
	Headless    bool          `env:"VISUAL_HEADLESS" envDefault:"true"`
	NoSandbox   bool          `env:"VISUAL_NO_SANDBOX"`
	PageTimeout time.Duration `env:"VISUAL_PAGE_TIMEOUT" envDefault:"30s"`
	StableFor   time.Duration `env:"VISUAL_STABLE_FOR" envDefault:"500ms"`
}

// RodCapturer captures pages with Chrome over the DevTools protocol.
type RodCapturer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	cfg      RodConfig
}

// freezeJS stops animations and the caret so repeated captures match.
const freezeJS = `() => {
	const style = document.createElement('style');
	style.textContent = '*,*::before,*::after{animation:none!important;transition:none!important;caret-color:transparent!important}';
	document.head.appendChild(style);
}`

const stripJS = `(selectors) => {
	for (const sel of selectors) {
		document.querySelectorAll(sel).forEach((el) => el.remove());
	}
}`

// NewRodCapturer launches Chrome, or connects to cfg.ControlURL.
func NewRodCapturer(ctx context.Context, cfg RodConfig) (*RodCapturer, error) {
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 30 * time.Second
	}
	if cfg.StableFor <= 0 {
		cfg.StableFor = 500 * time.Millisecond
	}

	c := &RodCapturer{cfg: cfg}
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(cfg.Headless).NoSandbox(cfg.NoSandbox)
		if cfg.Bin != "" {
			l = l.Bin(cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, errors.Join(ErrLaunchBrowser, err)
		}
		c.launcher = l
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if c.launcher != nil {
			c.launcher.Kill()
			c.launcher.Cleanup()
		}
		return nil, errors.Join(ErrLaunchBrowser, err)
	}
	c.browser = browser
	return c, nil
}

// Capture implements Capturer.
func (c *RodCapturer) Capture(ctx context.Context, url string, vp Viewport, strip []string) ([]byte, error) {
	page, err := c.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, err
	}
	defer func() { _ = page.Close() }()

	p := page.Context(ctx).Timeout(c.cfg.PageTimeout)
	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
		Mobile:            vp.Mobile,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := p.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	if _, err := p.Eval(freezeJS); err != nil {
		return nil, fmt.Errorf("freeze animations: %w", err)
	}
	if len(strip) > 0 {
		if _, err := p.Eval(stripJS, strip); err != nil {
			return nil, fmt.Errorf("strip volatile elements: %w", err)
		}
	}
	if err := p.WaitStable(c.cfg.StableFor); err != nil {
		return nil, fmt.Errorf("wait stable: %w", err)
	}
	return p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

// Close shuts the browser down and removes a launched profile directory.
func (c *RodCapturer) Close() error {
	err := c.browser.Close()
	if c.launcher != nil {
		c.launcher.Kill()
		c.launcher.Cleanup()
	}
	return err
}
