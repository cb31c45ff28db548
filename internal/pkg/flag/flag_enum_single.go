// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"fmt"
	"strings"

	"github.com/posener/complete"
)

// -- EnumSingleVar and enumSingleValue
type EnumSingleVar struct {
	Name       string
	Aliases    []string
	Usage      string
	Values     []string
	Default    string
	Hidden     bool
	EnvVar     string
	Target     *string
	SetHook    func(val string)
	Completion complete.Predictor
}

type EnumSingleVarP struct {
	*EnumSingleVar
	Shorthand string
}

func (f *Set) EnumSingleVar(i *EnumSingleVar) {
	f.EnumSingleVarP(&EnumSingleVarP{
		EnumSingleVar: i,
		Shorthand:     "",
	})
}

func (f *Set) EnumSingleVarP(i *EnumSingleVarP) {
	initial := i.Default
	if v, ok := lookupEnv(i.EnvVar); ok && i.valid(v) {
		initial = v
	}

	possible := strings.Join(i.Values, ", ")

	completion := i.Completion
	if completion == nil {
		completion = complete.PredictSet(i.Values...)
	}

	f.VarFlagP(&VarFlagP{
		VarFlag: &VarFlag{
			Name:       i.Name,
			Aliases:    i.Aliases,
			Usage:      strings.TrimRight(i.Usage, ". \t") + ". One possible value from: " + possible + ".",
			Default:    i.Default,
			EnvVar:     i.EnvVar,
			Value:      newEnumSingleValue(i, initial),
			Completion: completion,
		},
		Shorthand: i.Shorthand,
	})
}

func (i *EnumSingleVar) valid(val string) bool {
	for _, p := range i.Values {
		if strings.EqualFold(p, val) {
			return true
		}
	}
	return false
}

// enumSingleValue accepts exactly one of a fixed set of values, matched
// case-insensitively and stored in the spelling of Values.
type enumSingleValue struct {
	ev *EnumSingleVarP
}

func newEnumSingleValue(ev *EnumSingleVarP, def string) *enumSingleValue {
	*ev.Target = def
	return &enumSingleValue{ev: ev}
}

func (s *enumSingleValue) Set(val string) error {
	for _, p := range s.ev.Values {
		if strings.EqualFold(p, val) {
			*s.ev.Target = p

			if s.ev.SetHook != nil {
				s.ev.SetHook(p)
			}
			return nil
		}
	}

	return fmt.Errorf("'%s' not valid. Must be one of: %s", val, strings.Join(s.ev.Values, ", "))
}

func (s *enumSingleValue) Get() interface{} { return *s.ev.Target }
func (s *enumSingleValue) String() string   { return *s.ev.Target }
func (s *enumSingleValue) Example() string  { return "string" }
func (s *enumSingleValue) Hidden() bool     { return s.ev.Hidden }
func (s *enumSingleValue) Type() string     { return "EnumSingle" }
