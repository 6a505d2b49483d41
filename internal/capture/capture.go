package capture

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"decision-analysis/internal/artifact"
	"decision-analysis/internal/model"
)

// Service renders URLs and serves cached, single-flight-coalesced results
// (spec.md §4.2, §5).
type Service struct {
	browser  *Browser
	cache    ResultCache
	artifacts *artifact.Store
	group    singleflight.Group
}

// NewService wires a Browser, a ResultCache backend, and the Artifact
// Store that receives screenshots.
func NewService(browser *Browser, cache ResultCache, artifacts *artifact.Store) *Service {
	return &Service{browser: browser, cache: cache, artifacts: artifacts}
}

// Capture renders the URL at desktop and mobile viewports and returns a
// Capture. refresh=true bypasses the cache and invalidates the entry.
// Concurrent callers for the same normalized URL coalesce onto one render.
func (s *Service) Capture(ctx context.Context, rawURL string, refresh bool) model.Capture {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return model.Capture{
			Status: model.CaptureError,
			URL:    rawURL,
			Viewports: map[model.Viewport]model.ViewportCapture{
				model.ViewportDesktop: {Status: string(model.CaptureError), Error: model.ErrNavigationError},
				model.ViewportMobile:  {Status: string(model.CaptureError), Error: model.ErrNavigationError},
			},
		}
	}

	if refresh {
		s.cache.Delete(normalized)
	} else if cached, ok := s.cache.Get(normalized); ok {
		return cached
	}

	result, err, _ := s.group.Do(normalized, func() (interface{}, error) {
		c := s.captureUncached(ctx, normalized)
		if c.Status != model.CaptureError {
			s.cache.Set(normalized, c)
		}
		return c, nil
	})
	if err != nil {
		log.Error().Err(err).Str("url", normalized).Msg("unexpected capture group error")
	}
	return result.(model.Capture)
}

func (s *Service) captureUncached(ctx context.Context, normalizedURL string) model.Capture {
	viewports := make(map[model.Viewport]model.ViewportCapture, len(viewportSpecs))
	var combinedText string
	okCount := 0

	for _, vp := range viewportSpecs {
		text, shot, errTag := s.browser.render(ctx, normalizedURL, vp)
		if errTag != "" {
			viewports[vp.name] = model.ViewportCapture{
				Status: string(model.CaptureError),
				Width:  vp.width,
				Height: vp.height,
				Error:  errTag,
			}
			continue
		}

		ref := s.artifacts.Put(shot, "screenshot", string(vp.name), vp.width, vp.height)
		vc := model.ViewportCapture{
			Status:   string(model.CaptureOK),
			Width:    vp.width,
			Height:   vp.height,
			Artifact: &ref,
		}
		if ref.Error != "" {
			vc.Status = string(model.CaptureDegraded)
			vc.Error = ref.Error
		}
		viewports[vp.name] = vc
		if text != "" && len(text) > len(combinedText) {
			combinedText = text
		}
		okCount++
	}

	status := model.CaptureOK
	switch okCount {
	case 0:
		status = model.CaptureError
	case 1:
		status = model.CaptureDegraded
	}

	return model.Capture{
		Status:        status,
		URL:           normalizedURL,
		Viewports:     viewports,
		ExtractedText: CleanText(combinedText),
	}
}

// DefaultCaptureTimeout is the deadline the orchestrator puts on the whole
// capture stage. It equals one viewport's render budgets summed (60s
// navigation, 60s text extraction, 30s screenshot); both viewports render
// one after the other under this single deadline.
const DefaultCaptureTimeout = 150 * time.Second
