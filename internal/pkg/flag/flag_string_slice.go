// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"strings"

	"github.com/posener/complete"
)

// -- StringSliceVar and stringSliceValue
type StringSliceVar struct {
	Name       string
	Aliases    []string
	Usage      string
	Default    []string
	Hidden     bool
	EnvVar     string
	Target     *[]string
	Completion complete.Predictor
}

type StringSliceVarP struct {
	*StringSliceVar
	Shorthand string
}

func (f *Set) StringSliceVar(i *StringSliceVar) {
	f.StringSliceVarP(&StringSliceVarP{
		StringSliceVar: i,
		Shorthand:      "",
	})
}

func (f *Set) StringSliceVarP(i *StringSliceVarP) {
	initial := i.Default
	if v, ok := lookupEnv(i.EnvVar); ok {
		initial = splitList(v)
	}

	f.VarFlagP(&VarFlagP{
		VarFlag: &VarFlag{
			Name:       i.Name,
			Aliases:    i.Aliases,
			Usage:      i.Usage,
			Default:    strings.Join(i.Default, ","),
			EnvVar:     i.EnvVar,
			Value:      newStringSliceValue(i, initial),
			Completion: i.Completion,
		},
		Shorthand: i.Shorthand,
	})
}

// stringSliceValue accepts comma separated lists and repeated flags. The
// first value given on the command line replaces the default.
type stringSliceValue struct {
	v       *StringSliceVarP
	changed bool
}

func newStringSliceValue(v *StringSliceVarP, def []string) *stringSliceValue {
	*v.Target = append([]string(nil), def...)
	return &stringSliceValue{v: v}
}

func (s *stringSliceValue) Set(val string) error {
	parts := splitList(val)
	if !s.changed {
		*s.v.Target = parts
		s.changed = true
		return nil
	}
	*s.v.Target = append(*s.v.Target, parts...)
	return nil
}

func (s *stringSliceValue) Get() interface{} { return *s.v.Target }
func (s *stringSliceValue) String() string   { return strings.Join(*s.v.Target, ",") }
func (s *stringSliceValue) Example() string  { return "string" }
func (s *stringSliceValue) Hidden() bool     { return s.v.Hidden }
func (s *stringSliceValue) Type() string     { return "stringSlice" }

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
