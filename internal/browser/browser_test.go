package browser

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Headless {
		t.Error("Expected headless to be false by default for the manual-login flow")
	}

	if opts.PageLoadTimeout != 60*time.Second {
		t.Errorf("Expected page load timeout to be 60s, got %v", opts.PageLoadTimeout)
	}

	if opts.ViewportWidth != 1920 || opts.ViewportHeight != 1080 {
		t.Errorf("Expected viewport to be 1920x1080, got %dx%d", opts.ViewportWidth, opts.ViewportHeight)
	}

	if opts.Locale != "ru-RU" {
		t.Errorf("Expected locale to be ru-RU, got %s", opts.Locale)
	}
}
