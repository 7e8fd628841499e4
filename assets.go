package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed templates/*.html static/*
var assetsFS embed.FS

// StaticFile is one asset held in memory.
type StaticFile struct {
	ContentType string
	Body        []byte
}

// AssetBundle holds parsed templates and static files, minified in
// production.
type AssetBundle struct {
	Templates *template.Template
	Static    map[string]StaticFile
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
		TemplateDelims:   html.GoTemplateDelims,
	})
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// loadAssets reads the embedded templates and static files.
func loadAssets(minifyAssets bool) (*AssetBundle, error) {
	var m *minify.M
	if minifyAssets {
		m = newMinifier()
	}

	tmpl := template.New("")
	names, err := fs.Glob(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		src, err := assetsFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if m != nil {
			if src, err = minifyBytes(m, "text/html", name, src); err != nil {
				return nil, err
			}
		}
		if _, err := tmpl.New(path.Base(name)).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	static := make(map[string]StaticFile)
	err = fs.WalkDir(assetsFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		body, err := assetsFS.ReadFile(p)
		if err != nil {
			return err
		}
		ct := contentTypeFor(p)
		if m != nil && (ct == "text/css" || ct == "application/javascript") {
			if body, err = minifyBytes(m, ct, p, body); err != nil {
				return err
			}
		}
		static[strings.TrimPrefix(p, "static/")] = StaticFile{ContentType: ct, Body: body}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AssetBundle{Templates: tmpl, Static: static}, nil
}

func minifyBytes(m *minify.M, mediaType, name string, src []byte) ([]byte, error) {
	out, err := m.Bytes(mediaType, src)
	if err != nil {
		return nil, fmt.Errorf("minify %s: %w", name, err)
	}
	if len(src) > 0 {
		logInfo("Minified %s: %d bytes → %d bytes (%.1f%% reduction)",
			name, len(src), len(out), float64(len(src)-len(out))/float64(len(src))*100)
	}
	return out, nil
}

func contentTypeFor(name string) string {
	switch path.Ext(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// staticHandler serves files from the in-memory bundle.
func (app *App) staticHandler(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	file, ok := app.Assets.Static[name]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Content-Type", file.ContentType)
	http.ServeContent(c.Writer, c.Request, name, app.StartTime, bytes.NewReader(file.Body))
}
