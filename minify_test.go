package main

import (
	"strings"
	"testing"
)

// TestCSSMinification checks that CSS is minified as expected
func TestCSSMinification(t *testing.T) {
	m := newMinifier()
	input := `
		body {
			color: #fff;
			margin: 0  ;
		}
	`
	expected := `body{color:#fff;margin:0}`

	var b strings.Builder
	if err := m.Minify("text/css", &b, strings.NewReader(input)); err != nil {
		t.Fatalf("CSS minification failed: %v", err)
	}
	if got := b.String(); got != expected {
		t.Errorf("CSS minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

// TestHTMLMinificationKeepsTemplateActions checks Go template actions survive minification
func TestHTMLMinificationKeepsTemplateActions(t *testing.T) {
	m := newMinifier()
	input := `<div class="word">
		{{ .Word }}
	</div>`

	out, err := m.String("text/html", input)
	if err != nil {
		t.Fatalf("HTML minification failed: %v", err)
	}
	if !strings.Contains(out, "{{") || !strings.Contains(out, ".Word") {
		t.Errorf("template action lost during minification: %q", out)
	}
}

// TestLoadAssets checks both plain and minified bundles parse
func TestLoadAssets(t *testing.T) {
	for _, minified := range []bool{false, true} {
		bundle, err := loadAssets(minified)
		if err != nil {
			t.Fatalf("loadAssets(minify=%v) failed: %v", minified, err)
		}
		for _, name := range []string{templateIndex, templateBoard} {
			if bundle.Templates.Lookup(name) == nil {
				t.Errorf("loadAssets(minify=%v): template %q missing", minified, name)
			}
		}
		css, ok := bundle.Static["app.css"]
		if !ok {
			t.Fatalf("loadAssets(minify=%v): app.css missing", minified)
		}
		if css.ContentType != "text/css" {
			t.Errorf("app.css content type = %q", css.ContentType)
		}
		if _, ok := bundle.Static["app.js"]; !ok {
			t.Errorf("loadAssets(minify=%v): app.js missing", minified)
		}
	}

	plain, _ := loadAssets(false)
	small, _ := loadAssets(true)
	if len(small.Static["app.css"].Body) >= len(plain.Static["app.css"].Body) {
		t.Errorf("minified css (%d bytes) not smaller than source (%d bytes)",
			len(small.Static["app.css"].Body), len(plain.Static["app.css"].Body))
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"static/app.css": "text/css",
		"static/app.js":  "application/javascript",
		"static/blob":    "application/octet-stream",
	}
	for name, want := range cases {
		if got := contentTypeFor(name); got != want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", name, got, want)
		}
	}
}
