// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
)

// EnvPrefix is prepended to every environment variable read into a Server.
const EnvPrefix = "INVITATION_"

// Server is the configuration of the HTTP server started by "serve".
type Server struct {
	// Addr is the host:port the server listens on.
	Addr string `env:"ADDR" envDefault:"127.0.0.1:8080"`

	// BasePath is the URL prefix the invitation is served under.
	BasePath string `env:"BASE_PATH" envDefault:"/khitan-invitation/"`

	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`

	// DebugPanel controls whether pages include the URL debug panel.
	DebugPanel bool `env:"DEBUG_PANEL" envDefault:"true"`
}

// LoadServer reads the server configuration from the process environment.
func LoadServer() (Server, error) {
	return parseServer(env.Options{Prefix: EnvPrefix})
}

// ParseServer reads the server configuration from environ instead of the
// process environment. Keys carry the INVITATION_ prefix.
func ParseServer(environ map[string]string) (Server, error) {
	return parseServer(env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parseServer(opts env.Options) (Server, error) {
	var cfg Server
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	return cfg, cfg.Validate()
}

// Validate checks that the configuration can be used to start a server.
func (s Server) Validate() error {
	var mErr *multierror.Error

	if s.Addr == "" {
		mErr = multierror.Append(mErr, fmt.Errorf("address must not be empty"))
	}
	if !strings.HasPrefix(s.BasePath, "/") {
		mErr = multierror.Append(mErr, fmt.Errorf("base path %q must start with /", s.BasePath))
	} else if err := checkBasePath(s.BasePath); err != nil {
		mErr = multierror.Append(mErr, err)
	}
	if s.ShutdownTimeout <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("shutdown timeout must be positive"))
	}
	if s.ReadHeaderTimeout <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("read header timeout must be positive"))
	}

	return mErr.ErrorOrNil()
}

// checkBasePath rejects base paths that cannot be used as a route prefix:
// wildcard braces, whitespace, and paths that are not already clean.
func checkBasePath(p string) error {
	if strings.ContainsAny(p, "{} \t\r\n") {
		return fmt.Errorf("base path %q must not contain braces or whitespace", p)
	}
	clean := path.Clean(p)
	if clean != "/" {
		clean += "/"
	}
	if clean != p {
		return fmt.Errorf("base path %q is not a clean path, use %q", p, clean)
	}
	return nil
}

// NormalizeBasePath returns p with a leading and trailing slash. The empty
// string becomes "/".
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
