package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownBasic(t *testing.T) {
	html := string(RenderMarkdown("**жирный** и `код`"))
	if !strings.Contains(html, "<strong>жирный</strong>") {
		t.Errorf("bold not rendered: %s", html)
	}
	if !strings.Contains(html, "<code>код</code>") {
		t.Errorf("inline code not rendered: %s", html)
	}
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	html := string(RenderMarkdown("привет <script>alert('x')</script>"))
	if strings.Contains(html, "<script") {
		t.Errorf("script tag survived sanitization: %s", html)
	}
}

func TestRenderMarkdownAutolink(t *testing.T) {
	html := string(RenderMarkdown("см. https://example.com/page"))
	if !strings.Contains(html, `href="https://example.com/page"`) {
		t.Errorf("url not autolinked: %s", html)
	}
}
