package treesitter

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symfind/internal/ports"
)

// DefaultSystemIncludeDirs returns the usual system header locations that
// exist on this machine: /usr/local/include, /usr/include, the multiarch
// directories and the libstdc++ headers.
func DefaultSystemIncludeDirs() []string {
	var dirs []string
	for _, d := range []string{"/usr/local/include", "/usr/include"} {
		if isDir(d) {
			dirs = append(dirs, d)
		}
	}
	for _, pattern := range []string{"/usr/include/*-linux-gnu", "/usr/include/c++/*"} {
		matches, _ := filepath.Glob(pattern)
		sort.Sort(sort.Reverse(sort.StringSlice(matches)))
		for _, m := range matches {
			if isDir(m) {
				dirs = append(dirs, m)
			}
		}
	}
	return dirs
}

// includeCursor returns the cursor standing in for the header pulled in by
// an #include directive, or nil when the include contributes nothing: it
// could not be resolved, it is a user header, or the header declares nothing.
func (u *TranslationUnit) includeCursor(n *tree_sitter.Node) ports.Cursor {
	pathNode := n.ChildByFieldName("path")
	if pathNode == nil {
		return nil
	}

	var header string
	text := nodeText(pathNode, u.source)
	switch pathNode.Kind() {
	case "system_lib_string":
		header = u.parser.findSystemHeader(strings.Trim(text, "<>"))
	case "string_literal":
		name := strings.Trim(text, `"`)
		if local := filepath.Join(u.dir, name); isFile(local) {
			if !u.system {
				return nil
			}
			header = local
		} else {
			header = u.parser.findSystemHeader(name)
		}
	default:
		// Computed includes (#include MACRO) are not expanded.
		return nil
	}
	if header == "" || !u.parser.headerContributes(header, u.lang, u.depth+1) {
		return nil
	}

	return &cursor{
		unit: u,
		kind: ports.KindUnexposedDecl,
		loc:  &ports.Location{File: header, Line: 1, Column: 1, InSystemHeader: true},
	}
}

// findSystemHeader searches the system include directories for name.
func (p *Parser) findSystemHeader(name string) string {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name
		}
		return ""
	}
	for _, dir := range p.systemDirs {
		if candidate := filepath.Join(dir, name); isFile(candidate) {
			return candidate
		}
	}
	return ""
}

// headerContributes reports whether parsing the system header at path would
// produce at least one cursor, following its own includes. Results are
// cached per path; a header still being examined counts as empty, which
// breaks include cycles.
func (p *Parser) headerContributes(path, lang string, depth int) bool {
	if depth > maxIncludeDepth {
		return false
	}
	if v, ok := p.headers[path]; ok {
		return v
	}
	p.headers[path] = false

	contributes := false
	if source, err := os.ReadFile(path); err == nil && len(source) > 0 {
		if l, err := p.language(lang); err == nil {
			if tree, err := parseTree(l, source); err == nil {
				hu := newTranslationUnit(p, path, lang, source, tree)
				hu.system = true
				hu.depth = depth
				contributes = hu.hasCursors()
				hu.Close()
			}
		}
	}
	log.Debug().Str("header", path).Bool("contributes", contributes).Msg("treesitter: examined system header")

	p.headers[path] = contributes
	return contributes
}

// hasCursors reports whether the unit's root has at least one cursor child.
// It stops at the first one, so later includes are not examined.
func (u *TranslationUnit) hasCursors() bool {
	root := u.tree.RootNode()
	tc := root.Walk()
	defer tc.Close()
	if !tc.GotoFirstChild() {
		return false
	}
	for {
		if child := tc.Node(); child.IsNamed() {
			var out []ports.Cursor
			u.appendChild(root, child, tc.FieldName(), &out)
			if len(out) > 0 {
				return true
			}
		}
		if !tc.GotoNextSibling() {
			return false
		}
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
