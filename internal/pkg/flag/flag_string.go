// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"github.com/posener/complete"
)

// -- StringVar and stringValue
type StringVar struct {
	Name       string
	Aliases    []string
	Usage      string
	Default    string
	Example    string
	Hidden     bool
	EnvVar     string
	Target     *string
	Completion complete.Predictor
	SetHook    func(val string)
}

type StringVarP struct {
	*StringVar
	Shorthand string
}

func (f *Set) StringVar(i *StringVar) {
	f.StringVarP(&StringVarP{
		StringVar: i,
		Shorthand: "",
	})
}

func (f *Set) StringVarP(i *StringVarP) {
	initial := i.Default
	if v, ok := lookupEnv(i.EnvVar); ok {
		initial = v
	}

	example := i.Example
	if example == "" {
		example = "string"
	}

	f.VarFlagP(&VarFlagP{
		VarFlag: &VarFlag{
			Name:       i.Name,
			Aliases:    i.Aliases,
			Usage:      i.Usage,
			Default:    i.Default,
			EnvVar:     i.EnvVar,
			Value:      newStringValue(i, initial, example),
			Completion: i.Completion,
		},
		Shorthand: i.Shorthand,
	})
}

type stringValue struct {
	v       *StringVarP
	example string
}

func newStringValue(v *StringVarP, def, example string) *stringValue {
	*v.Target = def
	return &stringValue{v: v, example: example}
}

func (s *stringValue) Set(val string) error {
	*s.v.Target = val

	if s.v.SetHook != nil {
		s.v.SetHook(val)
	}
	return nil
}

func (s *stringValue) Get() interface{} { return *s.v.Target }
func (s *stringValue) String() string   { return *s.v.Target }
func (s *stringValue) Example() string  { return s.example }
func (s *stringValue) Hidden() bool     { return s.v.Hidden }
func (s *stringValue) Type() string     { return "string" }
