// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"testing"
	"time"

	"github.com/shoenig/test/must"
)

func TestParseServer_Defaults(t *testing.T) {
	cfg, err := ParseServer(map[string]string{})
	must.NoError(t, err)
	must.Eq(t, Server{
		Addr:              "127.0.0.1:8080",
		BasePath:          "/khitan-invitation/",
		ShutdownTimeout:   5 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		DebugPanel:        true,
	}, cfg)
}

func TestParseServer_Overrides(t *testing.T) {
	cfg, err := ParseServer(map[string]string{
		"INVITATION_ADDR":             ":9000",
		"INVITATION_BASE_PATH":        "undangan",
		"INVITATION_SHUTDOWN_TIMEOUT": "1s",
		"INVITATION_DEBUG_PANEL":      "false",
		"ADDR":                        "ignored:1",
	})
	must.NoError(t, err)
	must.Eq(t, ":9000", cfg.Addr)
	must.Eq(t, "/undangan/", cfg.BasePath)
	must.Eq(t, time.Second, cfg.ShutdownTimeout)
	must.False(t, cfg.DebugPanel)
}

func TestParseServer_Invalid(t *testing.T) {
	_, err := ParseServer(map[string]string{"INVITATION_SHUTDOWN_TIMEOUT": "soon"})
	must.ErrorContains(t, err, "parse env")

	_, err = ParseServer(map[string]string{
		"INVITATION_ADDR":             " ",
		"INVITATION_SHUTDOWN_TIMEOUT": "0s",
	})
	must.Error(t, err)
	must.StrContains(t, err.Error(), "shutdown timeout must be positive")
}

func TestServer_Validate(t *testing.T) {
	s := Server{BasePath: "nope", ShutdownTimeout: time.Second, ReadHeaderTimeout: time.Second}
	err := s.Validate()
	must.Error(t, err)
	must.StrContains(t, err.Error(), "2 errors occurred")
	must.StrContains(t, err.Error(), "address must not be empty")
	must.StrContains(t, err.Error(), `base path "nope" must start with /`)
}

func TestServer_Validate_BasePath(t *testing.T) {
	testCases := []struct {
		name     string
		basePath string
		expErr   string
	}{
		{name: "root", basePath: "/"},
		{name: "nested", basePath: "/a/b/"},
		{name: "open brace", basePath: "/a{b/", expErr: "must not contain braces or whitespace"},
		{name: "wildcard", basePath: "/{x}/", expErr: "must not contain braces or whitespace"},
		{name: "space", basePath: "/a b/", expErr: "must not contain braces or whitespace"},
		{name: "tab", basePath: "/a\tb/", expErr: "must not contain braces or whitespace"},
		{name: "double slash", basePath: "//a/", expErr: `is not a clean path, use "/a/"`},
		{name: "dot segment", basePath: "/a/../b/", expErr: `is not a clean path, use "/b/"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Server{
				Addr:              ":8080",
				BasePath:          tc.basePath,
				ShutdownTimeout:   time.Second,
				ReadHeaderTimeout: time.Second,
			}
			err := s.Validate()
			if tc.expErr == "" {
				must.NoError(t, err)
				return
			}
			must.ErrorContains(t, err, tc.expErr)
		})
	}
}

func TestParseServer_InvalidBasePath(t *testing.T) {
	_, err := ParseServer(map[string]string{"INVITATION_BASE_PATH": "/a{b/"})
	must.ErrorContains(t, err, "must not contain braces or whitespace")
}

func TestNormalizeBasePath(t *testing.T) {
	must.Eq(t, "/", NormalizeBasePath(""))
	must.Eq(t, "/", NormalizeBasePath("/"))
	must.Eq(t, "/a/", NormalizeBasePath("a"))
	must.Eq(t, "/a/b/", NormalizeBasePath("/a/b"))
}
