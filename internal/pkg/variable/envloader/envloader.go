// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package envloader

import (
	"os"
	"strings"
)

const DefaultPrefix = "INVITATION_VAR_"

type EnvLoader struct {
	prefix  string
	environ func() []string
}

func New() *EnvLoader {
	return &EnvLoader{prefix: DefaultPrefix, environ: os.Environ}
}

// GetVarsFromEnv returns the prefixed variables with the prefix removed.
// Names are lower-cased so INVITATION_VAR_TO sets the "to" variable.
func (e *EnvLoader) GetVarsFromEnv() map[string]string {
	prefix := e.prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	environ := e.environ
	if environ == nil {
		environ = os.Environ
	}
	return getVarsFromEnv(prefix, environ())
}

func getVarsFromEnv(prefix string, environ []string) map[string]string {
	out := make(map[string]string)
	for _, raw := range environ {
		switch {
		case !strings.HasPrefix(raw, prefix):
			continue
		case !strings.Contains(raw, "="):
			continue
		default:
			key, value, _ := strings.Cut(raw, "=")
			key = strings.ToLower(strings.TrimPrefix(key, prefix))
			if key == "" {
				continue
			}
			out[key] = value
		}
	}
	return out
}
