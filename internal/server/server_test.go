// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shoenig/test/must"

	"github.com/apsmono/invitation/internal/config"
	"github.com/apsmono/invitation/internal/pkg/invitation"
	"github.com/apsmono/invitation/internal/pkg/logging"
	"github.com/apsmono/invitation/internal/pkg/renderer"
)

func testServer(t *testing.T, basePath string) *Server {
	t.Helper()

	r, err := renderer.New()
	must.NoError(t, err)

	cfg := config.Server{
		Addr:              "127.0.0.1:0",
		BasePath:          basePath,
		ShutdownTimeout:   time.Second,
		ReadHeaderTimeout: time.Second,
		DebugPanel:        true,
	}
	return New(cfg, invitation.Defaults(), r, logging.NewTestLogger(t))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_Routes(t *testing.T) {
	h := testServer(t, "/khitan-invitation/").Handler()

	testCases := []struct {
		name        string
		target      string
		expStatus   int
		expLocation string
		expBody     string
	}{
		{
			name:      "home",
			target:    "/khitan-invitation/",
			expStatus: http.StatusOK,
			expBody:   "Kehadiran Saudara/i Sahabat merupakan",
		},
		{
			name:      "home with query",
			target:    "/khitan-invitation/?to=budi+santoso&date=Senin,+1+September+2025",
			expStatus: http.StatusOK,
			expBody:   "Kehadiran Saudara/i Budi Santoso merupakan",
		},
		{
			name:      "repeated query key",
			target:    "/khitan-invitation/?to=alpha&to=bravo",
			expStatus: http.StatusOK,
			expBody:   "Kehadiran Saudara/i Bravo merupakan",
		},
		{
			name:      "invite path",
			target:    "/khitan-invitation/invite/keluarga+besar+pak+ahmad",
			expStatus: http.StatusOK,
			expBody:   "Kehadiran Saudara/i Keluarga Besar Pak Ahmad merupakan",
		},
		{
			name:      "path beats query",
			target:    "/khitan-invitation/invite/budi?to=andi",
			expStatus: http.StatusOK,
			expBody:   "Kehadiran Saudara/i Budi merupakan",
		},
		{
			name:        "trailing slash",
			target:      "/khitan-invitation/invite/budi/?date=Senin",
			expStatus:   http.StatusMovedPermanently,
			expLocation: "/khitan-invitation/invite/budi?date=Senin",
		},
		{
			name:      "unknown path",
			target:    "/khitan-invitation/about",
			expStatus: http.StatusNotFound,
			expBody:   "Halaman tidak ditemukan",
		},
		{
			name:      "nested invite path",
			target:    "/khitan-invitation/invite/budi/extra",
			expStatus: http.StatusNotFound,
			expBody:   "Halaman tidak ditemukan",
		},
		{
			name:        "outside base path",
			target:      "/elsewhere",
			expStatus:   http.StatusFound,
			expLocation: "/khitan-invitation/",
		},
		{
			name:      "health",
			target:    "/khitan-invitation/healthz",
			expStatus: http.StatusOK,
			expBody:   "ok",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, h, tc.target)
			must.Eq(t, tc.expStatus, rec.Code)
			if tc.expLocation != "" {
				must.Eq(t, tc.expLocation, rec.Header().Get("Location"))
			}
			if tc.expBody != "" {
				must.StrContains(t, rec.Body.String(), tc.expBody)
			}
		})
	}
}

func TestServer_ContentType(t *testing.T) {
	h := testServer(t, "/").Handler()

	rec := get(t, h, "/")
	must.Eq(t, http.StatusOK, rec.Code)
	must.Eq(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = get(t, h, "/missing")
	must.Eq(t, http.StatusNotFound, rec.Code)
	must.Eq(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestServer_SamePageForBothRoutes(t *testing.T) {
	h := testServer(t, "/").Handler()

	home := get(t, h, "/?to=budi")
	invite := get(t, h, "/invite/budi")

	must.Eq(t, http.StatusOK, home.Code)
	must.Eq(t, http.StatusOK, invite.Code)
	must.StrContains(t, home.Body.String(), "Saudara/i Budi merupakan")
	must.StrContains(t, invite.Body.String(), "Saudara/i Budi merupakan")
}

func TestServer_InvalidOverrideFallsBack(t *testing.T) {
	h := testServer(t, "/").Handler()

	rec := get(t, h, "/?maps="+url.QueryEscape("javascript:alert(1)")+"&time=10.00+WIB")
	must.Eq(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	must.StrContains(t, body, `href="https://maps.google.com"`)
	must.StrContains(t, body, "10.00 WIB")
}

func TestServer_DebugPanel(t *testing.T) {
	s := testServer(t, "/")
	rec := get(t, s.Handler(), "/invite/budi?date=Senin")
	must.StrContains(t, rec.Body.String(), "Current URL: /invite/budi?date=Senin")

	s.cfg.DebugPanel = false
	rec = get(t, s.Handler(), "/invite/budi")
	must.StrNotContains(t, rec.Body.String(), "URL Debug")
}

func TestServer_Head(t *testing.T) {
	h := testServer(t, "/").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))
	must.Eq(t, http.StatusOK, rec.Code)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	h := testServer(t, "/").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	must.Eq(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_Serve(t *testing.T) {
	s := testServer(t, "/khitan-invitation/")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	must.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/khitan-invitation/healthz")
	must.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	must.NoError(t, err)
	must.NoError(t, resp.Body.Close())
	must.Eq(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		must.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunListenError(t *testing.T) {
	r, err := renderer.New()
	must.NoError(t, err)

	s := New(config.Server{Addr: "127.0.0.1:-1", BasePath: "/"}, invitation.Defaults(), r, nil)
	err = s.Run(context.Background())
	must.ErrorContains(t, err, "failed to listen")
}
