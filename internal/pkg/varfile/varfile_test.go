// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package varfile

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/shoenig/test/must"
	"github.com/spf13/afero"
)

func TestVarfile_DecodeHCL(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		expErr bool
		exp    map[string]string
	}{
		{
			name: "empty",
			src:  "",
			exp:  map[string]string{},
		},
		{
			name: "comment only",
			src:  "# just a comment",
			exp:  map[string]string{},
		},
		{
			name: "single override",
			src:  `to = "budi santoso"`,
			exp:  map[string]string{"to": "budi santoso"},
		},
		{
			name: "multiple overrides",
			src:  "to = \"budi\"\nvenue = \"Masjid Al-Ikhlas, BSD\"\nwa_number = 628111\n",
			exp: map[string]string{
				"to":        "budi",
				"venue":     "Masjid Al-Ikhlas, BSD",
				"wa_number": "628111",
			},
		},
		{
			name: "template expression",
			src:  `date = "Minggu, ${10} Agustus 2025"`,
			exp:  map[string]string{"date": "Minggu, 10 Agustus 2025"},
		},
		{
			name:   "missing equal",
			src:    `to "budi"`,
			expErr: true,
		},
		{
			name:   "list value",
			src:    `to = ["a", "b"]`,
			expErr: true,
			exp:    map[string]string{},
		},
		{
			name:   "null value",
			src:    `to = null`,
			expErr: true,
			exp:    map[string]string{},
		},
		{
			name:   "variable reference",
			src:    `to = guest`,
			expErr: true,
			exp:    map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Decode("embedded.hcl", []byte(tc.src))
			must.Eq(t, tc.expErr, res.Diags.HasErrors(), must.Sprint(res.Diags.Error()))
			if tc.exp != nil {
				must.Eq(t, tc.exp, res.Values())
			}
		})
	}
}

func TestVarfile_DecodeJSON(t *testing.T) {
	res := Decode("guest.json", []byte(`{"to": "budi", "wa_number": 628111}`))
	must.False(t, res.Diags.HasErrors())
	must.Eq(t, map[string]string{"to": "budi", "wa_number": "628111"}, res.Values())
}

func TestVarfile_DecodeUnsupported(t *testing.T) {
	res := Decode("guest.yaml", []byte(`to: budi`))
	must.True(t, res.Diags.HasErrors())
	must.Eq(t, "Unsupported file format", res.Diags[0].Summary)
}

func TestVarfile_OverrideRange(t *testing.T) {
	res := Decode("guest.hcl", []byte(`to = "bar"`))
	must.False(t, res.Diags.HasErrors())

	o := res.Overrides["to"]
	must.NotNil(t, o)
	must.Eq(t, hcl.Range{
		Filename: "guest.hcl",
		Start:    hcl.Pos{Line: 1, Column: 1, Byte: 0},
		End:      hcl.Pos{Line: 1, Column: 11, Byte: 10},
	}, o.Range)
}

func TestVarfile_DecodeFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	must.NoError(t, afero.WriteFile(fs, "/vars/a.hcl", []byte(`to = "budi"`), 0644))
	must.NoError(t, afero.WriteFile(fs, "/vars/b.json", []byte(`{"date": "Senin"}`), 0644))
	must.NoError(t, afero.WriteFile(fs, "/vars/c.hcl", []byte(`to = "ani"`), 0644))

	t.Run("merges files", func(t *testing.T) {
		res := DecodeFiles(fs, []string{"/vars/a.hcl", "/vars/b.json"})
		must.False(t, res.Diags.HasErrors())
		must.Eq(t, map[string]string{"to": "budi", "date": "Senin"}, res.Values())
		must.MapLen(t, 2, res.HCLFiles)
	})

	t.Run("duplicate definition", func(t *testing.T) {
		res := DecodeFiles(fs, []string{"/vars/a.hcl", "/vars/c.hcl"})
		must.True(t, res.Diags.HasErrors())
		must.Eq(t, "Duplicate definition", res.Diags[0].Summary)
		must.Eq(t, "budi", res.Values()["to"])
	})

	t.Run("missing file", func(t *testing.T) {
		res := DecodeFiles(fs, []string{"/vars/missing.hcl"})
		must.True(t, res.Diags.HasErrors())
		must.Eq(t, "Failed to read var file", res.Diags[0].Summary)
	})
}
