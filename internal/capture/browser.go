// Package capture drives a headless browser to render a URL at desktop
// and mobile viewports, extracts the rendered text, and caches results
// (spec.md §4.2, component C2).
package capture

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"decision-analysis/internal/model"
)

// viewportSpec describes one render target (spec.md §4.2).
type viewportSpec struct {
	name      model.Viewport
	width     int
	height    int
	userAgent string
}

var viewportSpecs = []viewportSpec{
	{
		name:   model.ViewportDesktop,
		width:  1365,
		height: 768,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	},
	{
		name:   model.ViewportMobile,
		width:  390,
		height: 844,
		userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) " +
			"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
	},
}

// blockedResourceHosts are skipped during navigation to cut latency/memory,
// per spec.md §4.2's resource-blocking requirement.
var blockedResourceHosts = []string{
	"google-analytics.com",
	"googletagmanager.com",
	"doubleclick.net",
	"facebook.net",
	"hotjar.com",
	"segment.io",
}

// Browser is a warm, shared headless-browser collaborator. One instance is
// reused across requests under a mutex; on crash it is lazily re-launched
// (spec.md §4.2/§5).
type Browser struct {
	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	launched    bool
}

// NewBrowser constructs an unlaunched Browser. The engine starts on first
// Capture call (lazy warm-up), matching spec.md §9's stated lifecycle
// option.
func NewBrowser() *Browser {
	return &Browser{}
}

func (b *Browser) ensureLaunched() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.launched {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
		b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
		b.launched = true
	}
	return b.allocCtx
}

// relaunch tears down and clears launch state so the next ensureLaunched
// call starts a fresh engine. Used after an engine crash is detected.
func (b *Browser) relaunch() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.allocCancel != nil {
		b.allocCancel()
	}
	b.launched = false
}

// Close tears down the shared browser. Called at process shutdown.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.allocCancel != nil {
		b.allocCancel()
		b.launched = false
	}
}

// NormalizeURL ensures a scheme and strips fragments, matching spec.md
// §4.2's cache-key normalization.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.Fragment = ""
	return u.String(), nil
}

func isBlockedHost(reqURL string) bool {
	for _, host := range blockedResourceHosts {
		if strings.Contains(reqURL, host) {
			return true
		}
	}
	return false
}

// blockedResourceTypes are failed outright regardless of host: video/media
// playback and webfonts contribute nothing to the text/screenshot capture
// this package produces but cost latency and memory to fetch (spec.md
// §4.2). Content-Length isn't known at the Request stage, so "large fonts"
// is approximated by blocking the Font resource type entirely rather than
// by a size threshold.
var blockedResourceTypes = map[network.ResourceType]bool{
	network.ResourceTypeMedia: true,
	network.ResourceTypeFont:  true,
}

// listenForBlockedRequests wires the Fetch domain's request-paused event to
// isBlockedHost/blockedResourceTypes, failing matching requests and letting
// everything else through (spec.md §4.2's resource-blocking requirement).
// Fetch must already be enabled on chromeCtx by the caller's action list.
func listenForBlockedRequests(chromeCtx context.Context) {
	chromedp.ListenTarget(chromeCtx, func(ev interface{}) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}
		go func() {
			execCtx := cdp.WithExecutor(chromeCtx, chromedp.FromContext(chromeCtx).Target)
			var err error
			if isBlockedHost(paused.Request.URL) || blockedResourceTypes[paused.ResourceType] {
				err = fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx)
			} else {
				err = fetch.ContinueRequest(paused.RequestID).Do(execCtx)
			}
			if err != nil {
				log.Debug().Err(err).Str("url", paused.Request.URL).Msg("fetch domain request handling failed")
			}
		}()
	})
}

// render navigates once for one viewport (60s budget), reads the visible
// body text (60s budget), and takes a viewport-sized screenshot (30s
// budget), returning the text plus the screenshot or a machine-stable error
// tag. There is no DOM-content-loaded/full-load/commit cascade: a failed
// navigation ends the attempt with navigation_error or engine_crash, and
// timeout_domcontentloaded is never returned.
func (b *Browser) render(parent context.Context, normalizedURL string, vp viewportSpec) (text string, screenshot []byte, errTag string) {
	allocCtx := b.ensureLaunched()
	chromeCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	listenForBlockedRequests(chromeCtx)

	navCtx, navCancel := context.WithTimeout(chromeCtx, 60*time.Second)
	defer navCancel()

	err := chromedp.Run(navCtx,
		chromedp.EmulateViewport(int64(vp.width), int64(vp.height)),
		fetch.Enable().WithPatterns([]*fetch.RequestPattern{{URLPattern: "*"}}),
		chromedp.Navigate(normalizedURL),
	)
	if err != nil {
		if isEngineCrash(err) {
			b.relaunch()
			return "", nil, model.ErrEngineCrash
		}
		return "", nil, model.ErrNavigationError
	}

	domCtx, domCancel := context.WithTimeout(chromeCtx, 60*time.Second)
	defer domCancel()
	var bodyText string
	if err := chromedp.Run(domCtx, chromedp.Sleep(500*time.Millisecond), chromedp.Text("body", &bodyText, chromedp.NodeVisible)); err != nil {
		// Text extraction failed: continue with empty text and still take
		// the screenshot.
		log.Debug().Err(err).Str("url", normalizedURL).Msg("full load text extraction failed, using commit-level content")
	}

	shotCtx, shotCancel := context.WithTimeout(chromeCtx, 30*time.Second)
	defer shotCancel()
	var buf []byte
	if err := chromedp.Run(shotCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return bodyText, nil, model.ErrScreenshotTimeout
	}

	return bodyText, buf, ""
}

func isEngineCrash(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "target closed") || strings.Contains(msg, "context canceled") && strings.Contains(msg, "chrome")
}
