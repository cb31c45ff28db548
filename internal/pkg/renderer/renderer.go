// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/apsmono/invitation/internal/pkg/errors"
	"github.com/apsmono/invitation/internal/pkg/invitation"
	"github.com/apsmono/invitation/sdk/titlecase"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const (
	leftTemplateDelim  = "[["
	rightTemplateDelim = "]]"

	homeTemplate     = "home.html.tpl"
	notFoundTemplate = "notfound.html.tpl"
)

// Renderer provides page rendering using the html/template package. The
// parsed templates are shared, so a Renderer is safe for concurrent use.
type Renderer struct {

	// Strict determines the template rendering missingkey option setting. If
	// set to true error will be used, otherwise zero is used.
	Strict bool

	caser *titlecase.Caser
	tpl   *template.Template
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStrict sets the Strict field.
func WithStrict(strict bool) Option {
	return func(r *Renderer) { r.Strict = strict }
}

// WithCaser sets the title caser used by the titleCase template function and
// the generated RSVP message.
func WithCaser(c *titlecase.Caser) Option {
	return func(r *Renderer) { r.caser = c }
}

// New parses the embedded templates.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{caser: titlecase.New()}
	for _, opt := range opts {
		opt(r)
	}

	// Set up our new template, add the function mapping, and set the
	// delimiters.
	tpl := template.New("tpl").Funcs(funcMap(r.caser)).Delims(leftTemplateDelim, rightTemplateDelim)

	// Control the behaviour of rendering when it encounters an element
	// referenced which doesn't exist within the variable mapping.
	if r.Strict {
		tpl.Option("missingkey=error")
	} else {
		tpl.Option("missingkey=zero")
	}

	tpl, err := tpl.ParseFS(templateFS, "templates/*.tpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tpl = tpl

	return r, nil
}

// Caser returns the title caser used by the renderer.
func (r *Renderer) Caser() *titlecase.Caser { return r.caser }

// Page is the data handed to the page templates.
type Page struct {
	// Params are the resolved invitation values.
	Params invitation.Params

	// BasePath is the URL prefix the page is served under. It always ends
	// with a slash.
	BasePath string

	// PathParams and Query are the raw request parameters shown in the
	// debug panel.
	PathParams map[string]string
	Query      url.Values

	// CurrentURL is the request path and query.
	CurrentURL string

	// DebugPanel controls whether the URL debug panel is rendered.
	DebugPanel bool
}

// RenderPage renders the invitation page into w.
func (r *Renderer) RenderPage(w io.Writer, page *Page) error {
	return r.render(w, homeTemplate, page)
}

// RenderNotFound renders the not-found page into w.
func (r *Renderer) RenderNotFound(w io.Writer, page *Page) error {
	return r.render(w, notFoundTemplate, page)
}

func (r *Renderer) render(w io.Writer, name string, page *Page) error {
	data := Page{Params: invitation.Defaults()}
	if page != nil {
		data = *page
	}
	if !strings.HasSuffix(data.BasePath, "/") {
		data.BasePath += "/"
	}

	// Render into a buffer so a failing template never leaves a partial
	// document behind.
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, &data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if buf.Len() == 0 {
		return errors.ErrNoOutput
	}

	_, err := buf.WriteTo(w)
	return err
}
