// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"time"

	"github.com/posener/complete"
)

// -- DurationVar and durationValue
type DurationVar struct {
	Name       string
	Aliases    []string
	Usage      string
	Default    time.Duration
	Hidden     bool
	EnvVar     string
	Target     *time.Duration
	Completion complete.Predictor
}

type DurationVarP struct {
	*DurationVar
	Shorthand string
}

func (f *Set) DurationVar(i *DurationVar) {
	f.DurationVarP(&DurationVarP{
		DurationVar: i,
		Shorthand:   "",
	})
}

func (f *Set) DurationVarP(i *DurationVarP) {
	initial := i.Default
	if v, ok := lookupEnv(i.EnvVar); ok {
		if d, err := time.ParseDuration(v); err == nil {
			initial = d
		}
	}

	f.VarFlagP(&VarFlagP{
		VarFlag: &VarFlag{
			Name:       i.Name,
			Aliases:    i.Aliases,
			Usage:      i.Usage,
			Default:    i.Default.String(),
			EnvVar:     i.EnvVar,
			Value:      newDurationValue(i, initial),
			Completion: i.Completion,
		},
		Shorthand: i.Shorthand,
	})
}

type durationValue struct {
	v *DurationVarP
}

func newDurationValue(v *DurationVarP, def time.Duration) *durationValue {
	*v.Target = def
	return &durationValue{v: v}
}

func (d *durationValue) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d.v.Target = v
	return nil
}

func (d *durationValue) Get() interface{} { return *d.v.Target }
func (d *durationValue) String() string   { return d.v.Target.String() }
func (d *durationValue) Example() string  { return "duration" }
func (d *durationValue) Hidden() bool     { return d.v.Hidden }
func (d *durationValue) Type() string     { return "duration" }
