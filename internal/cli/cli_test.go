// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/shoenig/test/must"
	"github.com/spf13/afero"

	"github.com/apsmono/invitation/internal/pkg/errors"
	flag "github.com/apsmono/invitation/internal/pkg/flag"
	"github.com/apsmono/invitation/internal/pkg/logging"
	"github.com/apsmono/invitation/internal/pkg/version"
	"github.com/apsmono/invitation/terminal"
)

type commandResult struct {
	exitCode int
	cmdOut   *bytes.Buffer
	cmdErr   *bytes.Buffer
}

func runCmd(t *testing.T, args []string, opts ...Option) commandResult {
	t.Helper()

	// Build our cancellation context
	ctx, closer := WithInterrupt(context.Background())
	defer closer()

	return runCmdContext(t, ctx, args, opts...)
}

func runCmdContext(t *testing.T, ctx context.Context, args []string, opts ...Option) commandResult {
	t.Helper()

	cmdOut := bytes.NewBuffer(make([]byte, 0))
	cmdErr := bytes.NewBuffer(make([]byte, 0))

	// Make a test UI
	ui := terminal.NonInteractiveUI(cmdOut, cmdErr)

	// Get our base command
	fset := flag.NewSets()
	globalOpts := append([]Option{
		WithFlags(fset),
		WithUI(ui),
		WithFs(afero.NewMemMapFs()),
		WithStdin(strings.NewReader("")),
		WithLogger(logging.NewTestLogger(t)),
	}, opts...)
	base, commands := Commands(ctx, globalOpts...)
	defer base.Close()

	command := &cli.CLI{
		Name:                       "invitation",
		Args:                       args,
		Version:                    version.HumanVersion(),
		Commands:                   commands,
		Autocomplete:               true,
		AutocompleteNoDefaultFlags: true,
		HelpFunc:                   GroupedHelpFunc(cli.BasicHelpFunc(cliName)),
		HelpWriter:                 cmdOut,
		ErrorWriter:                cmdErr,
	}

	t.Logf("Running invitation\n  args:%v", command.Args)

	// Run the CLI
	exitCode, err := command.Run()
	must.NoError(t, err)

	return commandResult{
		exitCode: exitCode,
		cmdOut:   cmdOut,
		cmdErr:   cmdErr,
	}
}

func expectSuccess(t *testing.T, r commandResult) {
	t.Helper()
	must.Eq(t, 0, r.exitCode, must.Sprintf("cmdErr: %s", r.cmdErr.String()))
}

func expectFailure(t *testing.T, r commandResult) {
	t.Helper()
	must.Eq(t, 1, r.exitCode, must.Sprintf("cmdOut: %s", r.cmdOut.String()))
}

func TestCLI_Version(t *testing.T) {
	result := runCmd(t, []string{"version"})
	expectSuccess(t, result)
	must.StrContains(t, result.cmdOut.String(), "Invitation")

	result = runCmd(t, []string{"version", "extra"})
	expectFailure(t, result)
	must.StrContains(t, result.cmdErr.String(), "this command takes no arguments")
}

func TestCLI_Help(t *testing.T) {
	result := runCmd(t, []string{"--help"})
	out := result.cmdOut.String()
	must.StrContains(t, out, "Welcome to Invitation")
	must.StrContains(t, out, "Render the invitation page")
	must.StrContains(t, out, "Serve the invitation over HTTP")
	must.StrNotContains(t, out, "server ")

	result = runCmd(t, []string{"render", "--help"})
	must.StrContains(t, result.cmdOut.String(), "to-file")
	must.StrContains(t, result.cmdOut.String(), "Operation Options")
}

func TestCLI_Render_Stdout(t *testing.T) {
	result := runCmd(t, []string{"render", "budi+santoso"})
	expectSuccess(t, result)

	out := result.cmdOut.String()
	must.StrHasPrefix(t, "<!doctype html>", out)
	must.StrContains(t, out, "Kehadiran Saudara/i Budi Santoso merupakan")
	must.StrContains(t, out, `href="/khitan-invitation/"`)
	must.StrContains(t, out, "URL Debug")
}

func TestCLI_Render_VarFlags(t *testing.T) {
	result := runCmd(t, []string{
		"render",
		"--var", "to=keluarga+besar+pak+ahmad",
		"--var", "venue=masjid al-ikhlas, bsd",
		"--no-debug-panel",
	})
	expectSuccess(t, result)

	out := result.cmdOut.String()
	must.StrContains(t, out, "Saudara/i Keluarga Besar Pak Ahmad merupakan")
	must.StrContains(t, out, "Masjid Al-Ikhlas, BSD")
	must.StrNotContains(t, out, "URL Debug")
}

func TestCLI_Render_UnknownVariable(t *testing.T) {
	result := runCmd(t, []string{"render", "--var", "colour=blue"})
	expectFailure(t, result)
	must.StrContains(t, result.cmdErr.String(), `unknown variable "colour"`)

	result = runCmd(t, []string{"render", "--var", "colour=blue", "--ignore-missing-vars"})
	expectSuccess(t, result)
}

func TestCLI_Render_InvalidVariable(t *testing.T) {
	result := runCmd(t, []string{"render", "--var", "maps=javascript:alert(1)"})
	expectFailure(t, result)
	must.StrContains(t, result.cmdErr.String(), errors.ErrInvalidURL.Error())
}

func TestCLI_Render_VarFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	must.NoError(t, afero.WriteFile(fs, "event.hcl", []byte(`
to    = "budi"
venue = "gedung serbaguna"
`), 0o644))
	must.NoError(t, afero.WriteFile(fs, "rsvp.json", []byte(`{"rsvp": "https://forms.example.com/rsvp"}`), 0o644))

	t.Run("file values", func(t *testing.T) {
		result := runCmd(t, []string{"render", "-f", "event.hcl", "-f", "rsvp.json"}, WithFs(fs))
		expectSuccess(t, result)

		out := result.cmdOut.String()
		must.StrContains(t, out, "Saudara/i Budi merupakan")
		must.StrContains(t, out, "Gedung Serbaguna")
		must.StrContains(t, out, `href="https://forms.example.com/rsvp"`)
	})

	t.Run("var flag wins over file", func(t *testing.T) {
		result := runCmd(t, []string{"render", "-f", "event.hcl", "--var", "to=siti"}, WithFs(fs))
		expectSuccess(t, result)
		must.StrContains(t, result.cmdOut.String(), "Saudara/i Siti merupakan")
	})

	t.Run("guest argument wins over var flag", func(t *testing.T) {
		result := runCmd(t, []string{"render", "ahmad", "-f", "event.hcl", "--var", "to=siti"}, WithFs(fs))
		expectSuccess(t, result)
		must.StrContains(t, result.cmdOut.String(), "Saudara/i Ahmad merupakan")
	})

	t.Run("missing file", func(t *testing.T) {
		result := runCmd(t, []string{"render", "-f", "missing.hcl"}, WithFs(fs))
		expectFailure(t, result)
		must.StrContains(t, result.cmdErr.String(), "missing.hcl")
	})
}

func TestCLI_Render_VarFileDiagnostics(t *testing.T) {
	fs := afero.NewMemMapFs()
	must.NoError(t, afero.WriteFile(fs, "a.hcl", []byte(`to = "budi"`), 0o644))
	must.NoError(t, afero.WriteFile(fs, "b.hcl", []byte(`to = "siti"`), 0o644))

	result := runCmd(t, []string{"render", "-f", "a.hcl", "-f", "b.hcl"}, WithFs(fs))
	expectFailure(t, result)
	must.StrContains(t, result.cmdErr.String(), "Duplicate Definition")
	must.StrContains(t, result.cmdErr.String(), "HCL Range: b.hcl:1,1-12")
}

func TestCLI_Render_EnvVariables(t *testing.T) {
	t.Setenv("INVITATION_VAR_TO", "dari+env")
	t.Setenv("INVITATION_VAR_SOMETHING_ELSE", "ignored")

	fs := afero.NewMemMapFs()
	must.NoError(t, afero.WriteFile(fs, "event.hcl", []byte(`to = "budi"`), 0o644))

	result := runCmd(t, []string{"render", "-f", "event.hcl"}, WithFs(fs))
	expectSuccess(t, result)
	must.StrContains(t, result.cmdOut.String(), "Saudara/i Dari Env merupakan")

	result = runCmd(t, []string{"render", "-f", "event.hcl", "--var", "to=siti"}, WithFs(fs))
	expectSuccess(t, result)
	must.StrContains(t, result.cmdOut.String(), "Saudara/i Siti merupakan")
}

func TestCLI_Render_ToFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	result := runCmd(t, []string{"render", "budi", "--to-file", "out/budi.html"}, WithFs(fs))
	expectSuccess(t, result)
	must.StrContains(t, result.cmdOut.String(), "written to out/budi.html")

	b, err := afero.ReadFile(fs, "out/budi.html")
	must.NoError(t, err)
	must.StrContains(t, string(b), "Saudara/i Budi merupakan")

	result = runCmd(t, []string{"render", "siti", "-o", "out/budi.html"}, WithFs(fs))
	expectFailure(t, result)
	must.StrContains(t, result.cmdErr.String(), errors.ErrOutputExists.Error())
	must.StrContains(t, result.cmdErr.String(), "Output File: out/budi.html")

	result = runCmd(t, []string{"render", "siti", "-o", "out/budi.html", "--overwrite"}, WithFs(fs))
	expectSuccess(t, result)

	b, err = afero.ReadFile(fs, "out/budi.html")
	must.NoError(t, err)
	must.StrContains(t, string(b), "Saudara/i Siti merupakan")
}

func TestCLI_Render_NotFound(t *testing.T) {
	result := runCmd(t, []string{"render", "--not-found", "--base-path", "/undangan"})
	expectSuccess(t, result)

	out := result.cmdOut.String()
	must.StrContains(t, out, "Halaman tidak ditemukan")
	must.StrContains(t, out, `href="/undangan/"`)
}

func TestCLI_Render_TooManyArgs(t *testing.T) {
	result := runCmd(t, []string{"render", "budi", "siti"})
	expectFailure(t, result)
	must.StrContains(t, result.cmdErr.String(), "this command requires at most 1 argument, got 2")
	must.StrContains(t, result.cmdOut.String(), `See "invitation render --help"`)
}

func TestCLI_Title(t *testing.T) {
	testCases := []struct {
		name  string
		args  []string
		stdin string
		exp   []string
	}{
		{
			name: "args joined",
			args: []string{"title", "masjid", "al-ikhlas,", "bsd"},
			exp:  []string{"Masjid Al-Ikhlas, BSD"},
		},
		{
			name:  "stdin lines",
			args:  []string{"title"},
			stdin: "budi santoso\n\n  keluarga besar pak ahmad  \n",
			exp:   []string{"Budi Santoso", "Keluarga Besar Pak Ahmad"},
		},
		{
			name: "acronyms lowered",
			args: []string{"title", "--keep-acronyms=false", "BUDI"},
			exp:  []string{"Budi"},
		},
		{
			name: "custom minor words",
			args: []string{"title", "--minor-words", "dan", "budi dan siti di rumah"},
			exp:  []string{"Budi dan Siti Di Rumah"},
		},
		{
			name: "custom force upper",
			args: []string{"title", "--force-upper", "ntb", "lombok ntb"},
			exp:  []string{"Lombok NTB"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := runCmd(t, tc.args, WithStdin(strings.NewReader(tc.stdin)))
			expectSuccess(t, result)

			lines := strings.Split(strings.TrimSpace(result.cmdOut.String()), "\n")
			must.Eq(t, tc.exp, lines)
		})
	}
}

func TestCLI_Title_Table(t *testing.T) {
	result := runCmd(t, []string{"title", "--table"},
		WithStdin(strings.NewReader("budi santoso\nrt. 01 rw. 02\n")))
	expectSuccess(t, result)

	out := result.cmdOut.String()
	must.StrContains(t, out, "INPUT")
	must.StrContains(t, out, "OUTPUT")
	must.StrContains(t, out, "Budi Santoso")
	must.StrContains(t, out, "RT. 01 RW. 02")
}

func TestCLI_Serve(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := runCmdContext(t, ctx, []string{
		"serve",
		"--addr", "127.0.0.1:0",
		"--base-path", "undangan",
		"--var", "to=budi",
		"--log-level", "off",
	})
	expectSuccess(t, result)

	out := result.cmdOut.String()
	must.StrContains(t, out, "Serving invitation")
	must.StrContains(t, out, "127.0.0.1:0")
	must.StrContains(t, out, "/undangan/")
	must.StrContains(t, out, "budi")
	must.StrContains(t, out, "Server stopped")
}

func TestCLI_Serve_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		expErr string
	}{
		{
			name:   "arguments rejected",
			args:   []string{"serve", "budi"},
			expErr: "this command takes no arguments",
		},
		{
			name:   "invalid timeout",
			args:   []string{"serve", "--shutdown-timeout", "0s"},
			expErr: "shutdown timeout must be positive",
		},
		{
			name:   "invalid log level",
			args:   []string{"serve", "--log-level", "loud"},
			expErr: "'loud' not valid",
		},
		{
			name:   "base path with braces",
			args:   []string{"serve", "--base-path", "/a{b/"},
			expErr: "must not contain braces or whitespace",
		},
		{
			name:   "invalid variable",
			args:   []string{"serve", "--var", "wa_number=62-811"},
			expErr: "must contain digits only",
		},
		{
			name:   "listen failure",
			args:   []string{"serve", "--addr", "127.0.0.1:-1"},
			expErr: "failed to listen on 127.0.0.1:-1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := runCmd(t, tc.args)
			expectFailure(t, result)
			must.StrContains(t, result.cmdErr.String(), tc.expErr)
		})
	}
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	must.NoError(t, writeFile(fs, "a/b/page.html", []byte("one"), false))
	must.ErrorIs(t, writeFile(fs, "a/b/page.html", []byte("two"), false), errors.ErrOutputExists)
	must.NoError(t, writeFile(fs, "a/b/page.html", []byte("two"), true))

	b, err := afero.ReadFile(fs, "a/b/page.html")
	must.NoError(t, err)
	must.Eq(t, "two", string(b))

	err = writeFile(fs, "a/b", []byte("x"), true)
	must.ErrorContains(t, err, "is a directory")
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader(" one \n\n\ttwo\r\nthree"))
	must.NoError(t, err)
	must.Eq(t, []string{"one", "two", "three"}, lines)
}
