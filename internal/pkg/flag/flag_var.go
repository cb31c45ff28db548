// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/posener/complete"
	flag "github.com/spf13/pflag"
)

// maxLineLength is the maximum width of any line.
const maxLineLength int = 78

// reRemoveWhitespace is a regular expression for stripping whitespace.
var reRemoveWhitespace = regexp.MustCompile(`[\s]+`)

// Value is the interface every flag value in this package implements.
type Value interface {
	flag.Value
	Get() interface{}
}

// FlagExample is an interface which declares an example value. This is
// used in help generation to provide better help text.
type FlagExample interface {
	Example() string
}

// FlagVisibility is an interface which declares whether a flag should be
// hidden from help and completions. This is usually used for deprecations
// on "internal-only" flags.
type FlagVisibility interface {
	Hidden() bool
}

// VarFlag is the registration shared by every typed flag.
type VarFlag struct {
	Name       string
	Aliases    []string
	Usage      string
	Default    string
	EnvVar     string
	Value      Value
	Completion complete.Predictor
}

type VarFlagP struct {
	*VarFlag
	Shorthand string
}

func (f *Set) VarFlag(i *VarFlag) {
	f.VarFlagP(&VarFlagP{
		VarFlag:   i,
		Shorthand: "",
	})
}

// VarFlagP registers the flag on this set, on the union set that is
// parsed, and on the std lib fallback set.
func (f *Set) VarFlagP(i *VarFlagP) {
	usage := i.Usage
	if i.EnvVar != "" {
		usage = strings.TrimRight(usage, " ") +
			fmt.Sprintf(" This can also be specified via the %s environment variable.", i.EnvVar)
	}

	register := func(fs *flag.FlagSet, name, shorthand, usage string) *flag.Flag {
		fs.VarP(i.Value, name, shorthand, usage)
		fl := fs.Lookup(name)
		fl.DefValue = i.Default
		return fl
	}

	register(f.flagSet, i.Name, i.Shorthand, usage)
	if f.unionSet != nil {
		register(f.unionSet, i.Name, i.Shorthand, usage)
	}
	if f.goflagSet != nil {
		f.goflagSet.Var(i.Value, i.Name, usage)
		if i.Shorthand != "" {
			f.goflagSet.Var(i.Value, i.Shorthand, usage)
		}
	}

	// Aliases parse into the same value but never show up in help.
	for _, alias := range i.Aliases {
		if f.unionSet != nil {
			register(f.unionSet, alias, "", usage).Hidden = true
		}
		if f.goflagSet != nil {
			f.goflagSet.Var(i.Value, alias, usage)
		}
	}

	if f.completions != nil {
		completion := i.Completion
		if completion == nil {
			completion = complete.PredictNothing
		}
		f.completions["--"+i.Name] = completion
		if i.Shorthand != "" {
			f.completions["-"+i.Shorthand] = completion
		}
	}
}

// lookupEnv returns the value of the named environment variable. An unset
// name is never found.
func lookupEnv(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return os.LookupEnv(name)
}

// wrapAtLengthWithPadding wraps the given text at the maxLineLength, taking
// into account any provided left padding.
func wrapAtLengthWithPadding(s string, pad int) string {
	wrapped := wordwrap.WrapString(s, uint(maxLineLength-pad))
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}
