package main

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// MediaKind classifies a field name as image content, audio content or
// plain text.
type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaAudio
)

// ClassifyField decides whether a field holds media, by case-insensitive
// substring match: "sentenceAudio" is audio, "image_fieldX" is image,
// "question" is neither. Names matching both tokens are rejected at config
// validation and never reach the pipeline; for direct callers the image
// check runs first.
func ClassifyField(name string) MediaKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "image"):
		return MediaImage
	case strings.Contains(lower, "audio"):
		return MediaAudio
	default:
		return MediaNone
	}
}

// CheckStatus is the outcome of a media URL precheck.
type CheckStatus string

const (
	CheckValid   CheckStatus = "valid"
	CheckInvalid CheckStatus = "invalid"
	CheckSkipped CheckStatus = "skipped"
)

// MediaCheckResult carries the precheck outcome and, for invalid URLs,
// a user-facing reason.
type MediaCheckResult struct {
	Status CheckStatus
	Reason string
}

// MediaChecker probes media URLs before they are handed to the remote
// system for download. Failures are soft: an unreachable or mistyped URL
// makes the field invalid, never the run.
type MediaChecker struct {
	client  *http.Client
	enabled bool
}

// NewMediaChecker returns a checker issuing HEAD probes with the given
// timeout. When enabled is false every check reports Skipped and the URL
// is passed through unverified.
func NewMediaChecker(enabled bool, timeout time.Duration) *MediaChecker {
	return &MediaChecker{
		client:  &http.Client{Timeout: timeout},
		enabled: enabled,
	}
}

// Check probes rawURL and verifies the response Content-Type matches the
// field's classification ("image/..." or "audio/...").
func (c *MediaChecker) Check(rawURL string, kind MediaKind) MediaCheckResult {
	if !c.enabled {
		return MediaCheckResult{Status: CheckSkipped}
	}

	resp, err := c.client.Head(rawURL)
	if err != nil {
		return MediaCheckResult{Status: CheckInvalid, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return MediaCheckResult{
			Status: CheckInvalid,
			Reason: fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	var wantPrefix string
	switch kind {
	case MediaImage:
		wantPrefix = "image/"
	case MediaAudio:
		wantPrefix = "audio/"
	default:
		return MediaCheckResult{Status: CheckInvalid, Reason: "not a media field"}
	}

	if !strings.HasPrefix(contentType, wantPrefix) {
		return MediaCheckResult{
			Status: CheckInvalid,
			Reason: fmt.Sprintf("content type %q is not %s*", contentType, wantPrefix),
		}
	}
	return MediaCheckResult{Status: CheckValid}
}

// mediaFilename derives the stored filename from a media URL: the
// percent-unescaped base name of the URL path.
func mediaFilename(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing media URL: %w", err)
	}
	unescaped, err := url.PathUnescape(parsed.Path)
	if err != nil {
		unescaped = parsed.Path
	}
	name := path.Base(unescaped)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("media URL %q has no file name", rawURL)
	}
	return name, nil
}
