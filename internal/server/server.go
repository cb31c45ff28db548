// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

// Package server serves the invitation page over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/apsmono/invitation/internal/config"
	"github.com/apsmono/invitation/internal/pkg/invitation"
	"github.com/apsmono/invitation/internal/pkg/renderer"
)

const contentTypeHTML = "text/html; charset=utf-8"

// Server routes requests under the configured base path to the invitation
// page. Handlers only read shared state, so requests are served
// concurrently.
type Server struct {
	cfg      config.Server
	base     invitation.Params
	renderer *renderer.Renderer
	log      hclog.Logger
	handler  http.Handler
}

// New builds a Server. base holds the parameters every request starts from
// before its query and path overrides are applied.
func New(cfg config.Server, base invitation.Params, r *renderer.Renderer, log hclog.Logger) *Server {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	cfg.BasePath = config.NormalizeBasePath(cfg.BasePath)

	s := &Server{
		cfg:      cfg,
		base:     base,
		renderer: r,
		log:      log.Named("server"),
	}
	s.handler = chain(s.routes(), recoverPanic(s.log), logRequests(s.log))
	return s
}

func (s *Server) routes() http.Handler {
	base := s.cfg.BasePath
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+base+"{$}", s.handleInvitation)
	mux.HandleFunc("GET "+base+"invite/{to}", s.handleInvitation)
	mux.HandleFunc("GET "+base+"invite/{to}/{$}", redirectTrailingSlash)
	mux.HandleFunc("GET "+base+"healthz", handleHealth)
	mux.HandleFunc("GET "+base, s.handleNotFound)

	// Anything outside the base path is sent to the invitation.
	if base != "/" {
		mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, base, http.StatusFound)
		})
	}

	return mux
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address and serves until ctx is done, then
// shuts down, giving in-flight requests up to the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ErrorLog:          s.log.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	s.log.Info("serving invitation", "addr", ln.Addr().String(), "base_path", s.cfg.BasePath)

	select {
	case <-ctx.Done():
		s.log.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleInvitation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	overrides := make(map[string]string, len(query)+1)
	for name, vals := range query {
		// A repeated key takes its last value.
		overrides[name] = vals[len(vals)-1]
	}

	pathParams := map[string]string{}
	if to := r.PathValue("to"); to != "" {
		pathParams[invitation.VarGuest] = to
		overrides[invitation.VarGuest] = to
	}

	params, rejected := s.base.ApplyLenient(overrides)
	for _, err := range rejected {
		s.log.Debug("ignoring override", "path", r.URL.Path, "error", err)
	}

	s.render(w, http.StatusOK, s.renderer.RenderPage, &renderer.Page{
		Params:     params,
		BasePath:   s.cfg.BasePath,
		PathParams: pathParams,
		Query:      query,
		CurrentURL: r.URL.RequestURI(),
		DebugPanel: s.cfg.DebugPanel,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusNotFound, s.renderer.RenderNotFound, &renderer.Page{
		Params:   s.base,
		BasePath: s.cfg.BasePath,
	})
}

func (s *Server) render(w http.ResponseWriter, status int, fn func(io.Writer, *renderer.Page) error, page *renderer.Page) {
	var buf bytes.Buffer
	if err := fn(&buf, page); err != nil {
		s.log.Error("failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirectTrailingSlash canonicalizes request paths by stripping trailing
// "/" characters.
func redirectTrailingSlash(w http.ResponseWriter, r *http.Request) {
	canonical := strings.TrimRight(r.URL.EscapedPath(), "/")
	if r.URL.RawQuery != "" {
		canonical += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, canonical, http.StatusMovedPermanently)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}
