// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

// Package titlecase converts free-form names and addresses into readable
// title case. Short English and Indonesian connector words stay lowercase
// unless they open or close the phrase, known abbreviations are forced to
// uppercase, and tokens that are already written in capitals are kept as-is.
package titlecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var defaultMinorWords = []string{
	// English
	"a", "an", "and", "as", "at", "but", "by", "for", "in", "of", "on", "or",
	"the", "to", "vs", "via",
	// Indonesian
	"dan", "di", "ke", "dari", "yang", "untuk", "pada", "dengan", "atau", "para",
}

var defaultForceUpper = []string{
	"BSD", "DKI", "DIY", "ID", "RT", "RW", "RI", "III", "II", "IV",
}

// DefaultMinorWords returns a copy of the built-in connector word list.
func DefaultMinorWords() []string {
	return append([]string(nil), defaultMinorWords...)
}

// DefaultForceUpper returns a copy of the built-in abbreviation list.
func DefaultForceUpper() []string {
	return append([]string(nil), defaultForceUpper...)
}

// Option configures a Caser.
type Option func(*Caser)

// WithMinorWords replaces the minor-word set. Entries are matched
// case-insensitively. Calling it with no words disables minor-word lowering.
func WithMinorWords(words ...string) Option {
	return func(c *Caser) {
		c.minor = make(map[string]struct{}, len(words))
		for _, w := range words {
			c.minor[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithForceUpper replaces the forced-uppercase set. Entries are matched
// case-insensitively.
func WithForceUpper(tokens ...string) Option {
	return func(c *Caser) {
		c.upper = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			c.upper[strings.ToUpper(t)] = struct{}{}
		}
	}
}

// WithKeepAcronyms controls whether tokens that are already fully uppercase
// are passed through unchanged. The default is true.
func WithKeepAcronyms(keep bool) Option {
	return func(c *Caser) { c.keepAcronyms = keep }
}

// Caser holds a title-casing configuration. It is immutable once built and
// safe for concurrent use.
type Caser struct {
	minor        map[string]struct{}
	upper        map[string]struct{}
	keepAcronyms bool
}

// New builds a Caser using the default word lists modified by opts.
func New(opts ...Option) *Caser {
	c := &Caser{keepAcronyms: true}
	WithMinorWords(defaultMinorWords...)(c)
	WithForceUpper(defaultForceUpper...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCaser = New()

// Title title-cases text with the default configuration, or with the
// configuration described by opts when any are passed.
func Title(text string, opts ...Option) string {
	if len(opts) == 0 {
		return defaultCaser.String(text)
	}
	return New(opts...).String(text)
}

// TitlePtr is Title for optional input. A nil pointer yields "".
func TitlePtr(text *string, opts ...Option) string {
	if text == nil {
		return ""
	}
	return Title(*text, opts...)
}

// isSpace also splits on the byte order mark, which browsers treat as
// whitespace when trimming.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// String returns the title-cased form of text. The output always holds the
// same number of space-separated words as the normalized input.
func (c *Caser) String(text string) string {
	words := strings.FieldsFunc(norm.NFKC.String(text), isSpace)
	if len(words) == 0 {
		return ""
	}

	// cases.Caser values carry state between calls, so they are scoped to a
	// single invocation.
	cs := casing{
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
	}

	last := len(words) - 1
	for i, w := range words {
		words[i] = c.word(cs, w, i == 0 || i == last)
	}
	return strings.Join(words, " ")
}

func (c *Caser) word(cs casing, w string, edge bool) string {
	upper := cs.upper.String(w)
	if _, ok := c.upper[strings.TrimRight(upper, ".,")]; ok {
		return upper
	}

	if c.keepAcronyms && utf8.RuneCountInString(w) > 1 && w == upper && hasLetter(w) {
		return w
	}

	lower := cs.lower.String(w)
	if !edge {
		if _, ok := c.minor[lower]; ok {
			return lower
		}
	}

	return cs.capitalize(w)
}

type casing struct {
	upper cases.Caser
	lower cases.Caser
}

// capitalize upper-cases the first letter of every letter run in w and
// lower-cases the rest of the run. Hyphens and apostrophes split w into
// chunks that are capitalized independently.
func (cs casing) capitalize(w string) string {
	var b strings.Builder
	b.Grow(len(w))

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		run := w[start:end]
		_, size := utf8.DecodeRuneInString(run)
		b.WriteString(cs.upper.String(run[:size]))
		b.WriteString(cs.lower.String(run[size:]))
		start = -1
	}

	for i, r := range w {
		switch {
		case unicode.IsLetter(r):
			if start < 0 {
				start = i
			}
		case unicode.Is(unicode.Mn, r) && start >= 0:
			// combining marks stay attached to the letter run
		default:
			flush(i)
			b.WriteRune(r)
		}
	}
	flush(len(w))

	return b.String()
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
