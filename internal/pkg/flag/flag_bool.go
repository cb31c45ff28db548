// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"strconv"

	"github.com/posener/complete"
)

// -- BoolVar and boolValue
type BoolVar struct {
	Name       string
	Aliases    []string
	Usage      string
	Default    bool
	Hidden     bool
	EnvVar     string
	Target     *bool
	Completion complete.Predictor
	SetHook    func(val bool)
}

type BoolVarP struct {
	*BoolVar
	Shorthand string
}

// optional interface to indicate boolean flags that can be
// supplied without "=value" text
type boolFlag interface {
	String() string
	Set(string) error
	Type() string
	IsBoolFlag() bool
}

func (f *Set) BoolVar(i *BoolVar) {
	f.BoolVarP(&BoolVarP{
		BoolVar:   i,
		Shorthand: "",
	})
}

func (f *Set) BoolVarP(i *BoolVarP) {
	initial := i.Default
	if v, ok := lookupEnv(i.EnvVar); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			initial = b
		}
	}

	f.VarFlagP(&VarFlagP{
		VarFlag: &VarFlag{
			Name:       i.Name,
			Aliases:    i.Aliases,
			Usage:      i.Usage,
			Default:    strconv.FormatBool(i.Default),
			EnvVar:     i.EnvVar,
			Value:      newBoolValue(i, initial),
			Completion: i.Completion,
		},
		Shorthand: i.Shorthand,
	})

	// Every flag in this package is a var flag, so pflag does not know this
	// one may be passed without a value. Set the no option default ourselves.
	f.flagSet.Lookup(i.Name).NoOptDefVal = "true"
	if f.unionSet != nil {
		f.unionSet.Lookup(i.Name).NoOptDefVal = "true"
		for _, alias := range i.Aliases {
			f.unionSet.Lookup(alias).NoOptDefVal = "true"
		}
	}
}

type boolValue struct {
	v *BoolVarP
}

func newBoolValue(v *BoolVarP, def bool) *boolValue {
	*v.Target = def
	return &boolValue{v: v}
}

func (b *boolValue) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}

	*b.v.Target = v

	if b.v.SetHook != nil {
		b.v.SetHook(v)
	}
	return nil
}

func (b *boolValue) Get() interface{} { return *b.v.Target }
func (b *boolValue) String() string   { return strconv.FormatBool(*b.v.Target) }
func (b *boolValue) Example() string  { return "" }
func (b *boolValue) Hidden() bool     { return b.v.Hidden }
func (b *boolValue) IsBoolFlag() bool { return true }
func (b *boolValue) Type() string     { return "bool" }
