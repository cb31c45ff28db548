// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"bytes"
	"errors"
	goflag "flag"
	"fmt"
	"io"
	"strings"

	"github.com/posener/complete"
	flag "github.com/spf13/pflag"
)

// Sets is a group of flag sets.
type Sets struct {
	// unionSet is the set that is the union of all other sets. This
	// has ALL flags defined on it and is the set that is parsed. But
	// we maintain the other list of sets so that we can generate proper help.
	unionSet *flag.FlagSet

	// flagSets is the list of sets that we have. We don't parse these
	// directly but use them for help generation and autocompletion.
	flagSets []*Set

	// goflagSet has the same values as unionSet, but as std go flags
	// instead of posix flags. Used only as a fallback if parsing the
	// unionSet throws an error to support std go flag compatibility.
	goflagSet *goflag.FlagSet

	// completions is our set of autocompletion handlers. This is also
	// the union of all available flags similar to unionSet.
	completions complete.Flags
}

// NewSets creates a new flag sets.
func NewSets() *Sets {
	unionSet := flag.NewFlagSet("", flag.ContinueOnError)
	goflagSet := goflag.NewFlagSet("", goflag.ContinueOnError)

	// Errors and usage are expected to be controlled externally by
	// checking on the result of Parse.
	unionSet.Usage = func() {}
	unionSet.SetOutput(io.Discard)

	goflagSet.Usage = func() {}
	goflagSet.SetOutput(io.Discard)

	return &Sets{
		unionSet:    unionSet,
		completions: complete.Flags{},
		goflagSet:   goflagSet,
	}
}

// NewSet creates a new single flag set. A set should be created for
// any grouping of flags, for example "Render Options" or "Server Options".
func (f *Sets) NewSet(name string) *Set {
	flagSet := NewSet(name)

	// The union and completions are pointers to our own values
	flagSet.unionSet = f.unionSet
	flagSet.completions = f.completions
	flagSet.goflagSet = f.goflagSet

	// Keep track of it for help generation
	f.flagSets = append(f.flagSets, flagSet)
	return flagSet
}

// Completions returns the completions for this flag set.
func (f *Sets) Completions() complete.Flags {
	return f.completions
}

// Parse parses the given flags, returning any errors.
// It does a naive check for std lib flags to determine which
// flag set to parse.
func (f *Sets) Parse(args []string) error {
	if hasGoFlags(args) {
		if err := f.goflagSet.Parse(args); err != nil {
			return err
		}

		// Std lib flags don't allow flags after positional args
		return checkFlagsAfterArgs(f.goflagSet.Args(), f)
	}
	return f.unionSet.Parse(args)
}

// Parsed reports whether the command-line flags have been parsed.
func (f *Sets) Parsed() bool {
	return f.unionSet.Parsed() || f.goflagSet.Parsed()
}

// Args returns the remaining args after parsing.
func (f *Sets) Args() []string {
	// Check if parsing fell back to std go flags to return correct set of args
	if f.goflagSet.Parsed() {
		return f.goflagSet.Args()
	}
	return f.unionSet.Args()
}

// Changed reports whether the named flag was set on the command line.
func (f *Sets) Changed(name string) bool {
	if f.goflagSet.Parsed() {
		found := false
		f.goflagSet.Visit(func(fl *goflag.Flag) {
			if fl.Name == name {
				found = true
			}
		})
		return found
	}
	return f.unionSet.Changed(name)
}

// Help builds custom help for this command, grouping by flag set.
func (f *Sets) Help() string {
	var out bytes.Buffer

	for _, set := range f.flagSets {
		printFlagTitle(&out, set.name+":")
		set.VisitAll(func(fl *flag.Flag) {
			// Skip any hidden flags
			if fl.Hidden {
				return
			}
			printFlagDetail(&out, fl)
		})
	}

	return strings.TrimRight(out.String(), "\n")
}

// VisitSets calls fn for each set in the order they were created.
func (f *Sets) VisitSets(fn func(name string, set *Set)) {
	for _, set := range f.flagSets {
		fn(set.name, set)
	}
}

// Set is a grouped wrapper around a real flag set and a grouped flag set.
type Set struct {
	name        string
	flagSet     *flag.FlagSet
	unionSet    *flag.FlagSet
	goflagSet   *goflag.FlagSet
	completions complete.Flags
}

// NewSet creates a new flag set.
func NewSet(name string) *Set {
	return &Set{
		name:    name,
		flagSet: flag.NewFlagSet(name, flag.ContinueOnError),
	}
}

// Name returns the name of this flag set.
func (f *Set) Name() string {
	return f.name
}

func (f *Set) VisitAll(fn func(*flag.Flag)) {
	f.flagSet.VisitAll(fn)
}

// printFlagTitle prints a consistently-formatted title to the given writer.
func printFlagTitle(w io.Writer, s string) {
	fmt.Fprintf(w, "%s\n\n", s)
}

// printFlagDetail prints a single flag to the given writer.
func printFlagDetail(w io.Writer, f *flag.Flag) {
	if h, ok := f.Value.(FlagVisibility); ok && h.Hidden() {
		return
	}

	// This section follows the pflag library's usage output.
	if f.Shorthand != "" {
		fmt.Fprintf(w, "  -%s, --%s", f.Shorthand, f.Name)
	} else {
		fmt.Fprintf(w, "      --%s", f.Name)
	}

	if t, ok := f.Value.(FlagExample); ok && t.Example() != "" {
		fmt.Fprintf(w, "=<%s>", t.Example())
	}

	if !defaultIsZeroValue(f) {
		if f.Value.Type() == "string" {
			fmt.Fprintf(w, " (default %q)", f.DefValue)
		} else {
			fmt.Fprintf(w, " (default %s)", f.DefValue)
		}
	}
	if len(f.Deprecated) != 0 {
		fmt.Fprintf(w, " (DEPRECATED: %s)", f.Deprecated)
	}
	fmt.Fprint(w, "\n")

	usage := reRemoveWhitespace.ReplaceAllString(f.Usage, " ")
	indented := wrapAtLengthWithPadding(usage, 8)
	fmt.Fprintf(w, "%s\n\n", indented)
}

// defaultIsZeroValue returns true if the default value for this flag
// represents a zero value.
func defaultIsZeroValue(f *flag.Flag) bool {
	switch f.Value.(type) {
	case boolFlag:
		return f.DefValue == "false"
	case *durationValue:
		return f.DefValue == "0" || f.DefValue == "0s"
	case *stringValue, *enumSingleValue:
		return f.DefValue == ""
	case *stringSliceValue:
		return f.DefValue == "[]" || f.DefValue == ""
	case *stringMapValue:
		return f.DefValue == ""
	default:
		switch f.Value.String() {
		case "false", "<nil>", "", "0":
			return true
		}
		return false
	}
}

// checkFlagsAfterArgs checks for a very common user error scenario where
// CLI flags are specified after positional arguments. Since the fallback
// parser is the stdlib flag package, this is not allowed. We only look for
// flags we define to avoid false positives on hyphen-prefixed arguments.
func checkFlagsAfterArgs(args []string, set *Sets) error {
	if len(args) == 0 {
		return nil
	}

	flagMap := map[string]struct{}{}
	for _, v := range args {
		// Everything following "--" is fair game.
		if v == "--" {
			break
		}
		if len(v) < 2 || v[0] != '-' {
			continue
		}

		// Detect double hyphen flags too
		if v[1] == '-' {
			v = v[1:]
		}

		// More than a double hyphen is not a flag.
		if len(v) < 2 || v[1] == '-' {
			continue
		}

		if idx := strings.Index(v, "="); idx >= 0 {
			v = v[:idx]
		}
		flagMap[v[1:]] = struct{}{}
	}

	found := false
	set.VisitSets(func(_ string, s *Set) {
		s.VisitAll(func(f *flag.Flag) {
			if _, ok := flagMap[f.Name]; ok {
				found = true
			}
		})
	})

	if found {
		return errFlagAfterArgs
	}
	return nil
}

// Very simple check of the flags to see if they're std lib flags or posix.
// Because posix flags use shorthands, this assumes that std lib flags will
// all be more than one char long, not including the flag (e.g. -f is posix,
// not std lib).
func hasGoFlags(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			return true
		}
	}
	return false
}

var errFlagAfterArgs = errors.New(strings.TrimSpace(`
Flags must be specified before positional arguments when using Go standard
library style flags. For example, "invitation render -overwrite budi" instead
of "invitation render budi -overwrite".

The CLI also accepts posix flags, which does allow flags after positional
arguments. For example, both "invitation render --overwrite budi" and
"invitation render budi --overwrite" are valid commands.`))
