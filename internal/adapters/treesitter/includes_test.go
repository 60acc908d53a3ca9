//go:build !lean

package treesitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/symfind/internal/ports"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// systemTree lays out a fake system include directory and returns it.
func systemTree(t *testing.T) string {
	t.Helper()
	sys := t.TempDir()
	writeFile(t, filepath.Join(sys, "stdio.h"), "int printf(const char *fmt, ...);\n")
	writeFile(t, filepath.Join(sys, "empty.h"), "/* nothing */\n#define EMPTY 1\n")
	writeFile(t, filepath.Join(sys, "wrapper.h"), "#include <stdio.h>\n")
	writeFile(t, filepath.Join(sys, "loop_a.h"), "#include <loop_b.h>\n")
	writeFile(t, filepath.Join(sys, "loop_b.h"), "#include <loop_a.h>\n")
	return sys
}

func TestIncludes_SystemHeaderCursor(t *testing.T) {
	sys := systemTree(t)
	p := NewParser()
	defer p.Close()
	p.SetSystemIncludeDirs([]string{sys})
	assert.Equal(t, []string{sys}, p.SystemIncludeDirs())

	tu, err := p.Parse("main.c", []byte("int before;\n#include <stdio.h>\nint after;\n"))
	require.NoError(t, err)
	defer tu.Close()

	children := tu.Cursor().Children()
	require.Len(t, children, 3)
	assert.Equal(t, "before", children[0].Spelling())
	assert.False(t, children[0].Location().InSystemHeader)

	hdr := children[1].Location()
	assert.True(t, hdr.InSystemHeader)
	assert.Equal(t, filepath.Join(sys, "stdio.h"), hdr.File)
	assert.Equal(t, 1, hdr.Line)
	assert.Equal(t, 1, hdr.Column)
	assert.Equal(t, ports.KindUnexposedDecl, children[1].Kind())
	assert.Empty(t, children[1].Children())

	assert.Equal(t, "after", children[2].Spelling())
}

func TestIncludes_EmptyAndMissingHeadersContributeNothing(t *testing.T) {
	sys := systemTree(t)
	p := NewParser()
	defer p.Close()
	p.SetSystemIncludeDirs([]string{sys})

	tu, err := p.Parse("main.c", []byte("#include <empty.h>\n#include <nope.h>\n#include HEADER\nint x;\n"))
	require.NoError(t, err)
	defer tu.Close()

	children := tu.Cursor().Children()
	require.Len(t, children, 1)
	assert.Equal(t, "x", children[0].Spelling())
}

func TestIncludes_NestedSystemHeader(t *testing.T) {
	sys := systemTree(t)
	p := NewParser()
	defer p.Close()
	p.SetSystemIncludeDirs([]string{sys})

	tu, err := p.Parse("main.c", []byte("#include <wrapper.h>\n"))
	require.NoError(t, err)
	defer tu.Close()

	children := tu.Cursor().Children()
	require.Len(t, children, 1)
	assert.Equal(t, filepath.Join(sys, "wrapper.h"), children[0].Location().File)
}

func TestIncludes_CycleTerminates(t *testing.T) {
	sys := systemTree(t)
	p := NewParser()
	defer p.Close()
	p.SetSystemIncludeDirs([]string{sys})

	tu, err := p.Parse("main.c", []byte("#include <loop_a.h>\nint x;\n"))
	require.NoError(t, err)
	defer tu.Close()

	children := tu.Cursor().Children()
	require.Len(t, children, 1)
	assert.Equal(t, "x", children[0].Spelling())
}

func TestIncludes_UserHeaderIsNotExpanded(t *testing.T) {
	sys := systemTree(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stdio.h"), "int shadow(void);\n")
	main := filepath.Join(dir, "main.c")
	writeFile(t, main, "#include \"stdio.h\"\n#include \"missing_local.h\"\nint x;\n")

	p := NewParser()
	defer p.Close()
	p.SetSystemIncludeDirs([]string{sys})

	tu, err := p.ParseTranslationUnit(main)
	require.NoError(t, err)
	defer tu.Close()

	children := tu.Cursor().Children()
	require.Len(t, children, 1)
	assert.Equal(t, "x", children[0].Spelling())
}

func TestIncludes_QuotedFallsBackToSystemDirs(t *testing.T) {
	sys := systemTree(t)
	dir := t.TempDir()
	main := filepath.Join(dir, "main.c")
	writeFile(t, main, "#include \"stdio.h\"\n")

	p := NewParser()
	defer p.Close()
	p.SetSystemIncludeDirs([]string{sys})

	tu, err := p.ParseTranslationUnit(main)
	require.NoError(t, err)
	defer tu.Close()

	children := tu.Cursor().Children()
	require.Len(t, children, 1)
	assert.True(t, children[0].Location().InSystemHeader)
}

func TestDefaultSystemIncludeDirs_OnlyExisting(t *testing.T) {
	for _, dir := range DefaultSystemIncludeDirs() {
		assert.True(t, isDir(dir), dir)
	}
}

func TestIncludes_HeaderCacheResetBetweenUnits(t *testing.T) {
	sys := t.TempDir()
	hdr := filepath.Join(sys, "late.h")
	writeFile(t, hdr, "/* empty for now */\n")
	dir := t.TempDir()
	main := filepath.Join(dir, "main.c")
	writeFile(t, main, "#include <late.h>\nint x;\n")

	p := NewParser()
	defer p.Close()
	p.SetSystemIncludeDirs([]string{sys})

	first, err := p.ParseTranslationUnit(main)
	require.NoError(t, err)
	children := first.Cursor().Children()
	require.Len(t, children, 1)
	assert.False(t, children[0].Location().InSystemHeader)
	first.Close()

	writeFile(t, hdr, "int late_fn(void);\n")

	second, err := p.ParseTranslationUnit(main)
	require.NoError(t, err)
	defer second.Close()
	children = second.Cursor().Children()
	require.Len(t, children, 2)
	assert.True(t, children[0].Location().InSystemHeader)
}
