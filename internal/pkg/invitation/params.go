// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

// Package invitation holds the values that personalize the invitation page
// and the rules for resolving them from defaults and caller overrides.
package invitation

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/apsmono/invitation/internal/pkg/errors"
	"github.com/apsmono/invitation/sdk/titlecase"
)

// Variable names accepted from var files, the environment, CLI flags and
// query parameters.
const (
	VarGuest    = "to"
	VarChild    = "child"
	VarChild1   = "child1"
	VarChild2   = "child2"
	VarParent1  = "parent1"
	VarParent2  = "parent2"
	VarDate     = "date"
	VarTime     = "time"
	VarVenue    = "venue"
	VarAddress  = "address"
	VarMaps     = "maps"
	VarRSVP     = "rsvp"
	VarWANumber = "wa_number"
)

// Params are the personalization values of a single invitation.
type Params struct {
	Guest    string
	Child    string
	Child1   string
	Child2   string
	Parent1  string
	Parent2  string
	Date     string
	Time     string
	Venue    string
	Address  string
	MapsURL  string
	RSVPURL  string
	WANumber string
}

const defaultVenue = "Dsn. Tugurejo RT. 01 RW. 01 Desa Sragi Kec. Talun, Kab. Blitar"

// Defaults returns the values used when nothing overrides them.
func Defaults() Params {
	return Params{
		Guest:    "Sahabat",
		Child1:   "M. Alfathan Setyo Putra",
		Child2:   "M. Fauzan Setyo Putra",
		Parent1:  "Bapak Setyo Budiawan",
		Parent2:  "Ibu Shoimatu Tho'atin",
		Date:     "Minggu, 10 Agustus 2025",
		Time:     "09.00 WIB",
		Venue:    defaultVenue,
		Address:  defaultVenue,
		MapsURL:  "https://maps.google.com",
		WANumber: "6281234567890",
	}
}

type field struct {
	get   func(*Params) *string
	check func(string) error
}

var fields = map[string]field{
	VarGuest:    {get: func(p *Params) *string { return &p.Guest }},
	VarChild:    {get: func(p *Params) *string { return &p.Child }},
	VarChild1:   {get: func(p *Params) *string { return &p.Child1 }},
	VarChild2:   {get: func(p *Params) *string { return &p.Child2 }},
	VarParent1:  {get: func(p *Params) *string { return &p.Parent1 }},
	VarParent2:  {get: func(p *Params) *string { return &p.Parent2 }},
	VarDate:     {get: func(p *Params) *string { return &p.Date }},
	VarTime:     {get: func(p *Params) *string { return &p.Time }},
	VarVenue:    {get: func(p *Params) *string { return &p.Venue }},
	VarAddress:  {get: func(p *Params) *string { return &p.Address }},
	VarMaps:     {get: func(p *Params) *string { return &p.MapsURL }, check: checkURL},
	VarRSVP:     {get: func(p *Params) *string { return &p.RSVPURL }, check: checkURL},
	VarWANumber: {get: func(p *Params) *string { return &p.WANumber }, check: checkPhone},
}

// Names returns the sorted list of variable names.
func Names() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsVariable reports whether name is a known variable.
func IsVariable(name string) bool {
	_, ok := fields[name]
	return ok
}

// DecodePlus turns the '+' characters that some links use for spaces back
// into spaces.
func DecodePlus(s string) string {
	return strings.ReplaceAll(s, "+", " ")
}

// Apply returns a copy of p with overrides applied. Values are '+' decoded
// before use. Unknown names are errors when strict is set and ignored
// otherwise. Every problem is reported in the returned error and none of the
// overrides are applied when it is non-nil.
func (p Params) Apply(overrides map[string]string, strict bool) (Params, error) {
	var mErr *multierror.Error

	out := p
	for _, name := range sortedKeys(overrides) {
		f, ok := fields[name]
		if !ok {
			if strict {
				mErr = multierror.Append(mErr, fmt.Errorf("%w %q", errors.ErrUnknownVariable, name))
			}
			continue
		}

		val := decodeValue(name, overrides[name])
		if f.check != nil && val != "" {
			if err := f.check(val); err != nil {
				mErr = multierror.Append(mErr, fmt.Errorf("variable %q: %w", name, err))
				continue
			}
		}
		*f.get(&out) = val
	}

	if err := mErr.ErrorOrNil(); err != nil {
		return p, err
	}
	return out, nil
}

// ApplyLenient applies overrides one at a time, keeping the previous value of
// any variable whose override is invalid. Unknown names are ignored. The
// rejected overrides are returned so callers can log them.
func (p Params) ApplyLenient(overrides map[string]string) (Params, []error) {
	var rejected []error

	out := p
	for _, name := range sortedKeys(overrides) {
		f, ok := fields[name]
		if !ok {
			continue
		}

		val := decodeValue(name, overrides[name])
		if val == "" {
			// An empty query parameter falls back to the current value.
			continue
		}
		if f.check != nil {
			if err := f.check(val); err != nil {
				rejected = append(rejected, fmt.Errorf("variable %q: %w", name, err))
				continue
			}
		}
		*f.get(&out) = val
	}

	return out, rejected
}

// Children returns the names of the children being celebrated. A non-empty
// Child replaces the pair of configured children.
func (p Params) Children() []string {
	if strings.TrimSpace(p.Child) != "" {
		return []string{p.Child}
	}

	var out []string
	for _, c := range []string{p.Child1, p.Child2} {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}

// RSVPMessage is the WhatsApp message pre-filled by the default RSVP link.
func (p Params) RSVPMessage(c *titlecase.Caser) string {
	children := p.Children()
	titled := make([]string, len(children))
	for i, child := range children {
		titled[i] = c.String(child)
	}

	return fmt.Sprintf("Assalamu'alaikum, insyaaAllah saya (%s) akan menghadiri khitan %s pada %s — %s.",
		c.String(p.Guest), strings.Join(titled, " & "), p.Date, p.Time)
}

// RSVPLink returns the configured RSVP URL, or a WhatsApp link carrying the
// pre-filled confirmation message when none is set.
func (p Params) RSVPLink(c *titlecase.Caser) string {
	if p.RSVPURL != "" {
		return p.RSVPURL
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", p.WANumber, encodeURIComponent(p.RSVPMessage(c)))
}

// Map returns every variable keyed by name.
func (p Params) Map() map[string]string {
	out := make(map[string]string, len(fields))
	for name, f := range fields {
		out[name] = *f.get(&p)
	}
	return out
}

func decodeValue(name, val string) string {
	// Links keep their '+' characters; they are meaningful inside a query.
	switch name {
	case VarMaps, VarRSVP:
		return strings.TrimSpace(val)
	case VarWANumber:
		return strings.TrimPrefix(strings.TrimSpace(val), "+")
	}
	return DecodePlus(val)
}

// encodeURIComponent escapes s for use as a query value, encoding spaces as
// %20 rather than '+'.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q must use http or https", errors.ErrInvalidURL, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", errors.ErrInvalidURL, raw)
	}
	return nil
}

func checkPhone(raw string) error {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return fmt.Errorf("%q must contain digits only", raw)
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
