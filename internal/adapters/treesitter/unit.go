package treesitter

import (
	"path/filepath"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symfind/internal/ports"
)

// TranslationUnit is one parsed file. It owns the tree-sitter tree; cursors
// obtained from it are invalid after Close.
type TranslationUnit struct {
	parser *Parser
	path   string
	dir    string
	lang   string
	source []byte
	tree   *tree_sitter.Tree
	// system is set for units parsed from system headers.
	system bool
	depth  int
	// records holds the names of classes, structs and unions defined in the
	// unit, used to tell out-of-line methods from namespaced functions.
	records map[string]bool
}

func newTranslationUnit(p *Parser, path, lang string, source []byte, tree *tree_sitter.Tree) *TranslationUnit {
	return &TranslationUnit{
		parser:  p,
		path:    path,
		dir:     filepath.Dir(path),
		lang:    lang,
		source:  source,
		tree:    tree,
		records: make(map[string]bool),
	}
}

// Path returns the file the unit was parsed from.
func (u *TranslationUnit) Path() string { return u.path }

// Language returns the grammar name used to parse the unit.
func (u *TranslationUnit) Language() string { return u.lang }

// HasErrors reports whether tree-sitter had to recover from syntax errors.
func (u *TranslationUnit) HasErrors() bool {
	return u.tree != nil && u.tree.RootNode().HasError()
}

// Cursor returns the translation unit cursor.
func (u *TranslationUnit) Cursor() ports.Cursor {
	return &cursor{unit: u, node: u.tree.RootNode(), kind: ports.KindTranslationUnit}
}

// Close releases the tree. Safe to call multiple times.
func (u *TranslationUnit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// collectRecords records the names of every class, struct and union with a
// body.
func (u *TranslationUnit) collectRecords() {
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "class_specifier", "struct_specifier", "union_specifier":
			if n.ChildByFieldName("body") != nil {
				if name := n.ChildByFieldName("name"); name != nil {
					u.records[lastComponent(name, u.source)] = true
				}
			}
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(u.tree.RootNode())
}

// cursor adapts a tree-sitter node to ports.Cursor. Synthetic cursors stand
// in for the contents of a system header and have no node.
type cursor struct {
	unit *TranslationUnit
	node *tree_sitter.Node
	kind ports.CursorKind
	name *tree_sitter.Node
	loc  *ports.Location
}

func (c *cursor) Kind() ports.CursorKind { return c.kind }

func (c *cursor) Spelling() string {
	if c.name == nil {
		return ""
	}
	return spelling(c.name, c.unit.source)
}

func (c *cursor) Location() ports.Location {
	if c.loc != nil {
		return *c.loc
	}
	at := c.node
	if c.name != nil {
		at = c.name
	}
	pos := at.StartPosition()
	return ports.Location{
		File:           c.unit.path,
		Line:           int(pos.Row) + 1,
		Column:         int(pos.Column) + 1,
		InSystemHeader: c.unit.system,
	}
}

func (c *cursor) Children() []ports.Cursor {
	if c.node == nil {
		return nil
	}
	var out []ports.Cursor
	c.unit.appendChildren(c.node, &out)
	return out
}

// appendChildren appends the cursors for n's named children. Comments and
// macro definitions are dropped, conditional blocks are flattened into their
// parent and declarations are split per declarator. Includes become a system
// header cursor when they pull one in.
func (u *TranslationUnit) appendChildren(n *tree_sitter.Node, out *[]ports.Cursor) {
	tc := n.Walk()
	defer tc.Close()
	if !tc.GotoFirstChild() {
		return
	}
	for {
		child := tc.Node()
		field := tc.FieldName()
		if child.IsNamed() {
			u.appendChild(n, child, field, out)
		}
		if !tc.GotoNextSibling() {
			return
		}
	}
}

func (u *TranslationUnit) appendChild(parent, child *tree_sitter.Node, field string, out *[]ports.Cursor) {
	switch child.Kind() {
	case "comment", "preproc_def", "preproc_function_def", "preproc_call":
		return
	case "preproc_include":
		if hc := u.includeCursor(child); hc != nil {
			*out = append(*out, hc)
		}
		return
	case "declaration", "field_declaration", "type_definition":
		u.appendDeclarators(child, out)
		return
	}
	if isConditional(parent) && (field == "name" || field == "condition") {
		return
	}
	if isConditional(child) {
		u.appendChildren(child, out)
		return
	}
	kind, name := u.classify(parent, child, field)
	*out = append(*out, &cursor{unit: u, node: child, kind: kind, name: name})
}

// appendDeclarators splits a declaration into one cursor per declarator,
// preceded by any record or enum it defines. The type is not a cursor.
func (u *TranslationUnit) appendDeclarators(decl *tree_sitter.Node, out *[]ports.Cursor) {
	tc := decl.Walk()
	defer tc.Close()
	if !tc.GotoFirstChild() {
		return
	}
	for {
		child := tc.Node()
		field := tc.FieldName()
		switch {
		case field == "declarator":
			kind, name := u.classify(decl, child, field)
			*out = append(*out, &cursor{unit: u, node: child, kind: kind, name: name})
		case child.IsNamed() && isSpecifier(child):
			u.appendChild(decl, child, field, out)
		}
		if !tc.GotoNextSibling() {
			return
		}
	}
}

func isSpecifier(n *tree_sitter.Node) bool {
	switch n.Kind() {
	case "struct_specifier", "class_specifier", "union_specifier", "enum_specifier":
		return true
	}
	return false
}

func isConditional(n *tree_sitter.Node) bool {
	switch n.Kind() {
	case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef":
		return true
	}
	return false
}
