// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/posener/complete"
)

// -- StringMapVar and stringMapValue
type StringMapVar struct {
	Name       string
	Aliases    []string
	Usage      string
	Hidden     bool
	Target     *map[string]string
	Completion complete.Predictor
}

type StringMapVarP struct {
	*StringMapVar
	Shorthand string
}

func (f *Set) StringMapVar(i *StringMapVar) {
	f.StringMapVarP(&StringMapVarP{
		StringMapVar: i,
		Shorthand:    "",
	})
}

func (f *Set) StringMapVarP(i *StringMapVarP) {
	f.VarFlagP(&VarFlagP{
		VarFlag: &VarFlag{
			Name:       i.Name,
			Aliases:    i.Aliases,
			Usage:      i.Usage,
			Value:      newStringMapValue(i),
			Completion: i.Completion,
		},
		Shorthand: i.Shorthand,
	})
}

// stringMapValue collects repeated key=value flags. A later value for the
// same key replaces the earlier one.
type stringMapValue struct {
	v *StringMapVarP
}

func newStringMapValue(v *StringMapVarP) *stringMapValue {
	if *v.Target == nil {
		*v.Target = make(map[string]string)
	}
	return &stringMapValue{v: v}
}

func (s *stringMapValue) Set(val string) error {
	idx := strings.Index(val, "=")
	if idx == -1 {
		return fmt.Errorf("missing '=' in %q, expected key=value", val)
	}

	key := strings.TrimSpace(val[:idx])
	if key == "" {
		return fmt.Errorf("missing key in %q, expected key=value", val)
	}

	(*s.v.Target)[key] = val[idx+1:]
	return nil
}

func (s *stringMapValue) Get() interface{} { return *s.v.Target }

func (s *stringMapValue) String() string {
	keys := make([]string, 0, len(*s.v.Target))
	for k := range *s.v.Target {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + (*s.v.Target)[k]
	}
	return strings.Join(pairs, ",")
}

func (s *stringMapValue) Example() string { return "key=value" }
func (s *stringMapValue) Hidden() bool    { return s.v.Hidden }
func (s *stringMapValue) Type() string    { return "stringMap" }
