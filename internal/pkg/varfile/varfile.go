// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

// Package varfile decodes invitation variable override files. A var file is
// a flat list of top-level attributes, written either in HCL
//
//	to    = "keluarga besar bapak ahmad"
//	venue = "Masjid Al-Ikhlas, BSD"
//
// or as a JSON object with string or number values.
package varfile

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/json"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Override is a single variable assignment read from a var file.
type Override struct {
	Name  string
	Value string
	Range hcl.Range
}

// DecodeResult holds the overrides read from one or more files along with
// any diagnostics and the parsed files, which a hcl.DiagnosticWriter can use
// to print source snippets.
type DecodeResult struct {
	Overrides map[string]*Override
	Diags     hcl.Diagnostics
	HCLFiles  map[string]*hcl.File
}

// Values flattens the overrides into a name to value map.
func (d *DecodeResult) Values() map[string]string {
	out := make(map[string]string, len(d.Overrides))
	for name, o := range d.Overrides {
		out[name] = o.Value
	}
	return out
}

// Merge folds in into d. A variable set in more than one file is reported
// as an error diagnostic and the first definition is kept.
func (d *DecodeResult) Merge(in DecodeResult) {
	d.Diags = d.Diags.Extend(in.Diags)

	if d.Overrides == nil {
		d.Overrides = make(map[string]*Override)
	}
	if d.HCLFiles == nil {
		d.HCLFiles = make(map[string]*hcl.File)
	}

	// Iterate in source order so diagnostics are stable.
	incoming := make([]*Override, 0, len(in.Overrides))
	for _, o := range in.Overrides {
		incoming = append(incoming, o)
	}
	sort.Slice(incoming, func(i, j int) bool {
		return incoming[i].Range.Start.Byte < incoming[j].Range.Start.Byte
	})

	for _, o := range incoming {
		if existing, ok := d.Overrides[o.Name]; ok {
			if existing == o {
				continue
			}
			subject := o.Range
			d.Diags = d.Diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate definition",
				Detail: fmt.Sprintf("The variable %s can not be redefined. Existing definition found at %s ",
					o.Name, existing.Range),
				Subject: &subject,
			})
			continue
		}
		d.Overrides[o.Name] = o
	}

	for n, f := range in.HCLFiles {
		d.HCLFiles[n] = f
	}
}

// DecodeFiles reads and decodes each path from fs in order.
func DecodeFiles(fs afero.Fs, paths []string) DecodeResult {
	result := DecodeResult{
		Overrides: make(map[string]*Override),
		HCLFiles:  make(map[string]*hcl.File),
	}

	for _, path := range paths {
		src, err := readFile(fs, path)
		if err != nil {
			result.Diags = result.Diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Failed to read var file",
				Detail:   fmt.Sprintf("Cannot read %s: %v.", path, err),
			})
			continue
		}
		result.Merge(Decode(path, src))
	}

	return result
}

func readFile(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Decode parses src and evaluates each top-level attribute into a string.
// The parser is chosen by the filename extension.
func Decode(filename string, src []byte) DecodeResult {
	result := DecodeResult{
		Overrides: make(map[string]*Override),
		HCLFiles:  make(map[string]*hcl.File),
	}

	var file *hcl.File
	var diags hcl.Diagnostics

	switch suffix := strings.ToLower(filepath.Ext(filename)); suffix {
	case ".hcl", ".var":
		file, diags = hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	case ".json":
		file, diags = json.Parse(src, filename)
	default:
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported file format",
			Detail:   fmt.Sprintf("Cannot read from %s: unrecognized file format suffix %q.", filename, suffix),
		})
	}

	if file != nil {
		result.HCLFiles[filename] = file
	}

	// Any diags set at this point aren't recoverable, so return them.
	if diags.HasErrors() {
		result.Diags = diags
		return result
	}

	attrs, attrDiags := file.Body.JustAttributes()
	diags = diags.Extend(attrDiags)

	for name, attr := range attrs {
		value, vDiags := attr.Expr.Value(nil)
		if vDiags.HasErrors() {
			diags = diags.Extend(vDiags)
			continue
		}

		str, err := stringValue(value)
		if err != nil {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid variable value",
				Detail:   fmt.Sprintf("The value of %s %s.", name, err),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}

		result.Overrides[name] = &Override{
			Name:  name,
			Value: str,
			Range: attr.Range,
		}
	}

	result.Diags = diags
	return result
}

// stringValue converts primitive cty values to their string form.
func stringValue(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("must not be null")
	}
	if !v.IsWhollyKnown() {
		return "", fmt.Errorf("must be known")
	}
	if !v.Type().IsPrimitiveType() {
		return "", fmt.Errorf("must be a string, number, or bool, got %s", v.Type().FriendlyName())
	}

	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("must be convertible to string: %v", err)
	}
	return s.AsString(), nil
}
