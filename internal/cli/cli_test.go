package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/fidgo/pkg/design"
	"github.com/chazu/fidgo/pkg/kernel/sdfx"
	"github.com/chazu/fidgo/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

// stlTriangles reads the triangle count of a binary STL file and checks
// the file size matches it.
func stlTriangles(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 84)
	n := int(data[80]) | int(data[81])<<8 | int(data[82])<<16 | int(data[83])<<24
	assert.Equal(t, 84+50*n, len(data), "STL size for %d triangles", n)
	return n
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "fidgo", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"render", "vm", "save", "list", "rm"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestRenderScript(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "parts.fid", `
(defpart "ball" (sphere 1))
(defpart "block" (box 1 2 3 :at (vec3 5 0 0)))
`)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "render", "--depth", "4", "--out-dir", outDir, script)
	require.NoError(t, err)

	want := []string{
		filepath.Join(outDir, "parts_ball.stl"),
		filepath.Join(outDir, "parts_block.stl"),
	}
	assert.Equal(t, want, strings.Fields(out))
	for _, f := range want {
		assert.Positive(t, stlTriangles(t, f))
	}
}

func TestRenderSeveralScriptsConcurrently(t *testing.T) {
	dir := t.TempDir()
	a := writeScript(t, dir, "a.fid", `(sphere 1)`)
	b := writeScript(t, dir, "b.fid", `(torus 2 0.5)`)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "render", "-d", "4", "-o", outDir, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(outDir, "a_main.stl"),
		filepath.Join(outDir, "b_main.stl"),
	}, strings.Fields(out))
}

func TestRenderExamples(t *testing.T) {
	outDir := t.TempDir()
	out, err := execute(t, "render", "--depth", "4", "--out-dir", outDir,
		filepath.Join("..", "..", "examples", "table.fid"),
		filepath.Join("..", "..", "examples", "knob.fid"))
	require.NoError(t, err)

	files := strings.Fields(out)
	assert.Len(t, files, 7)
	assert.Contains(t, files, filepath.Join(outDir, "table_top.stl"))
	assert.Contains(t, files, filepath.Join(outDir, "knob_main.stl"))
}

func TestRenderUsesConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "ball.fid", `(sphere 1)`)
	outDir := filepath.Join(dir, "env-out")
	t.Setenv("FIDGO_OUT_DIR", outDir)
	t.Setenv("FIDGO_DEPTH", "3")

	_, err := execute(t, "render", script)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "ball_main.stl"))
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "nothing to render",
			args:     []string{"render"},
			wantCode: ExitCommandError,
			wantMsg:  "nothing to render",
		},
		{
			name:     "missing script",
			args:     []string{"render", filepath.Join(dir, "nope.fid")},
			wantCode: ExitCommandError,
			wantMsg:  "read script",
		},
		{
			name:     "syntax error",
			args:     []string{"render", writeScript(t, dir, "bad.fid", `(sphere 1`)},
			wantCode: ExitFailure,
			wantMsg:  "script errors",
		},
		{
			name:     "no parts",
			args:     []string{"render", writeScript(t, dir, "num.fid", `(+ 1 2)`)},
			wantCode: ExitFailure,
			wantMsg:  "empty design",
		},
		{
			name: "duplicate part",
			args: []string{"render", writeScript(t, dir, "dup.fid",
				`(defpart "a" (sphere 1)) (defpart "a" (sphere 2))`)},
			wantCode: ExitFailure,
			wantMsg:  "DUPLICATE_NAME",
		},
		{
			name: "part name escapes out dir",
			args: []string{"render", "-o", filepath.Join(dir, "out"), writeScript(t, dir, "escape.fid",
				`(defpart "/../../escaped" (sphere 1))`)},
			wantCode: ExitFailure,
			wantMsg:  "UNSAFE_NAME",
		},
		{
			name:     "depth too deep",
			args:     []string{"render", "--depth", "12", "-o", dir, writeScript(t, dir, "ok.fid", `(sphere 1)`)},
			wantCode: ExitFailure,
			wantMsg:  "tessellation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRenderEmptyPartWritesEmptySTL(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "gap.fid",
		`(defpart "gap" (intersection (sphere 1) (sphere 1 :at (vec3 5 0 0))))`)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "render", "--depth", "4", "--out-dir", outDir, script)
	require.NoError(t, err)

	path := filepath.Join(outDir, "gap_gap.stl")
	assert.Equal(t, []string{path}, strings.Fields(out))
	assert.Equal(t, 0, stlTriangles(t, path))
}

func TestWriteDesignRejectsUnsafePartNames(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	for _, name := range []string{"../../escaped", "/../../escaped", "sub/part", `sub\part`} {
		t.Run(name, func(t *testing.T) {
			d := design.New()
			d.AddPart(name, shape.Sphere(1))
			opts := &RenderOptions{Depth: 3, OutDir: outDir}

			files, err := writeDesign(context.Background(), d, sdfx.New(), opts, "")
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Empty(t, files)
			assert.NoFileExists(t, filepath.Join(root, "escaped.stl"))
		})
	}
}

func TestVMCommand(t *testing.T) {
	script := writeScript(t, t.TempDir(), "ball.fid", `(defpart "ball" (sphere 1))`)

	out, err := execute(t, "vm", script)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# part ball exact"), out)
	assert.Contains(t, out, " const 1\n")

	out, err = execute(t, "vm", "--dot", script)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph tree {"), out)

	_, err = execute(t, "vm", "--part", "missing", script)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestLibraryCommands(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "lib.db")
	knob := writeScript(t, dir, "knob.fid", `(union (sphere 1) (cylinder 0.5 3))`)
	pair := writeScript(t, dir, "pair.fid", `(defpart "a" (sphere 1)) (defpart "b" (box 1 1 1))`)

	out, err := execute(t, "save", "--db", db, "knob", knob)
	require.NoError(t, err)
	assert.Contains(t, out, "saved knob (bound")

	_, err = execute(t, "save", "--db", db, "pair", pair)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choose one with --part")

	_, err = execute(t, "save", "--db", db, "--part", "b", "cube", pair)
	require.NoError(t, err)

	out, err = execute(t, "list", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "cube"))
	assert.True(t, strings.HasPrefix(lines[2], "knob"))

	outDir := filepath.Join(dir, "out")
	out, err = execute(t, "render", "--db", db, "--from-db", "knob", "-d", "4", "-o", outDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(outDir, "knob.stl")}, strings.Fields(out))
	assert.Positive(t, stlTriangles(t, filepath.Join(outDir, "knob.stl")))

	_, err = execute(t, "rm", "--db", db, "knob")
	require.NoError(t, err)
	_, err = execute(t, "rm", "--db", db, "knob")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = execute(t, "render", "--db", db, "--from-db", "knob", "-o", outDir)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLibraryUsesConfigStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FIDGO_STORE", filepath.Join(dir, "env.db"))
	script := writeScript(t, dir, "ball.fid", `(sphere 1)`)

	_, err := execute(t, "save", "ball", script)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "env.db"))
}

func TestBadConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", assert.AnError)))
}
