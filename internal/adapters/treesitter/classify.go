package treesitter

import (
	"strings"
	"unicode"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symfind/internal/ports"
)

// classify maps a node to a clang cursor kind and the node holding its name.
// parent is the syntactic parent and field the child's field name in it.
func (u *TranslationUnit) classify(parent, n *tree_sitter.Node, field string) (ports.CursorKind, *tree_sitter.Node) {
	if field == "declarator" {
		switch parent.Kind() {
		case "declaration", "field_declaration":
			return u.classifyDeclarator(parent, n)
		case "type_definition":
			if d := resolveDeclarator(n, u.source); d.name != nil {
				return ports.KindTypedefDecl, d.name
			}
			return ports.KindUnexposed, nil
		case "for_range_loop":
			if d := resolveDeclarator(n, u.source); d.name != nil {
				return ports.KindVarDecl, d.name
			}
			return ports.KindUnexposed, nil
		}
	}

	switch n.Kind() {
	case "function_definition":
		d := resolveDeclarator(n.ChildByFieldName("declarator"), u.source)
		if d.name == nil {
			return ports.KindUnexposed, nil
		}
		return u.functionKind(n, d), d.name

	case "parameter_declaration", "optional_parameter_declaration", "variadic_parameter_declaration":
		return classifyParameter(parent, n, u.source)

	case "type_parameter_declaration", "optional_type_parameter_declaration", "variadic_type_parameter_declaration":
		return ports.KindTemplateTypeParameter, firstNamedChildOfKind(n, "type_identifier")

	case "struct_specifier", "class_specifier", "union_specifier", "enum_specifier":
		return classifyRecord(n)

	case "enumerator":
		return ports.KindEnumConstantDecl, n.ChildByFieldName("name")

	case "alias_declaration":
		return ports.KindTypeAliasDecl, n.ChildByFieldName("name")

	case "namespace_definition":
		return ports.KindNamespace, lastName(n.ChildByFieldName("name"))
	}
	return ports.KindUnexposed, nil
}

// classifyDeclarator handles one declarator of a declaration or member
// declaration; each declarator is its own cursor.
func (u *TranslationUnit) classifyDeclarator(decl, n *tree_sitter.Node) (ports.CursorKind, *tree_sitter.Node) {
	d := resolveDeclarator(n, u.source)
	if d.name == nil {
		return ports.KindUnexposed, nil
	}
	if d.isFunc {
		return u.functionKind(decl, d), d.name
	}
	if enclosingRecord(decl) != nil && !hasStorageClass(decl, "static", u.source) {
		return ports.KindFieldDecl, d.name
	}
	return ports.KindVarDecl, d.name
}

// functionKind decides between free functions, methods, constructors,
// destructors and templates for a function-like declaration.
func (u *TranslationUnit) functionKind(decl *tree_sitter.Node, d declarator) ports.CursorKind {
	if isTemplated(decl) {
		return ports.KindFunctionTemplate
	}
	if p := decl.Parent(); p != nil && p.Kind() == "friend_declaration" {
		return ports.KindFunctionDecl
	}
	if rec := enclosingRecord(decl); rec != nil {
		return memberKind(d.name, lastComponent(rec.ChildByFieldName("name"), u.source), u.source)
	}
	if d.scope != "" && u.records[d.scope] {
		return memberKind(d.name, d.scope, u.source)
	}
	return ports.KindFunctionDecl
}

func memberKind(name *tree_sitter.Node, record string, source []byte) ports.CursorKind {
	if name.Kind() == "destructor_name" {
		return ports.KindDestructor
	}
	if record != "" && nodeText(name, source) == record {
		return ports.KindConstructor
	}
	return ports.KindCXXMethod
}

func classifyParameter(parent, n *tree_sitter.Node, source []byte) (ports.CursorKind, *tree_sitter.Node) {
	d := resolveDeclarator(n.ChildByFieldName("declarator"), source)
	if parent.Kind() == "template_parameter_list" {
		return ports.KindNonTypeTemplateParameter, d.name
	}
	if gp := parent.Parent(); gp != nil && gp.Kind() == "catch_clause" {
		return ports.KindVarDecl, d.name
	}
	// f(void) declares no parameters.
	if d.name == nil && n.Kind() == "parameter_declaration" {
		if t := n.ChildByFieldName("type"); t != nil && nodeText(t, source) == "void" && parent.NamedChildCount() == 1 {
			return ports.KindUnexposed, nil
		}
	}
	return ports.KindParmDecl, d.name
}

func classifyRecord(n *tree_sitter.Node) (ports.CursorKind, *tree_sitter.Node) {
	if n.ChildByFieldName("body") == nil && !isForwardDeclaration(n) {
		// A use of the type, not a declaration of it.
		return ports.KindUnexposed, nil
	}
	name := lastName(n.ChildByFieldName("name"))
	kind := ports.KindEnumDecl
	switch n.Kind() {
	case "struct_specifier":
		kind = ports.KindStructDecl
	case "class_specifier":
		kind = ports.KindClassDecl
	case "union_specifier":
		kind = ports.KindUnionDecl
	}
	if kind != ports.KindEnumDecl && isTemplated(n) {
		kind = ports.KindClassTemplate
	}
	return kind, name
}

// isForwardDeclaration reports whether a body-less specifier stands alone,
// as in "struct S;", rather than naming a type inside another declaration.
func isForwardDeclaration(n *tree_sitter.Node) bool {
	p := n.Parent()
	if p == nil || n.ChildByFieldName("name") == nil {
		return false
	}
	switch p.Kind() {
	case "translation_unit", "declaration_list", "field_declaration_list", "template_declaration",
		"compound_statement", "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef":
		return true
	case "declaration":
		return p.ChildByFieldName("declarator") == nil
	}
	return false
}

// isTemplated reports whether n is the declaration of a template. Explicit
// specializations (template<>) are ordinary declarations.
func isTemplated(n *tree_sitter.Node) bool {
	p := n.Parent()
	if p == nil || p.Kind() != "template_declaration" {
		return false
	}
	params := p.ChildByFieldName("parameters")
	return params != nil && params.NamedChildCount() > 0
}

// enclosingRecord returns the class, struct or union whose body directly
// contains decl, or nil.
func enclosingRecord(decl *tree_sitter.Node) *tree_sitter.Node {
	p := decl.Parent()
	for p != nil {
		switch p.Kind() {
		case "template_declaration", "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef":
			p = p.Parent()
			continue
		case "field_declaration_list":
			return p.Parent()
		}
		return nil
	}
	return nil
}

func hasStorageClass(decl *tree_sitter.Node, class string, source []byte) bool {
	for i := uint(0); i < decl.NamedChildCount(); i++ {
		c := decl.NamedChild(i)
		if c.Kind() == "storage_class_specifier" && nodeText(c, source) == class {
			return true
		}
	}
	return false
}

// declarator is the result of unwrapping a C declarator down to its name.
type declarator struct {
	name *tree_sitter.Node
	// scope is the innermost qualifier of a qualified name ("B" in A::B::f).
	scope string
	// isFunc is set when the declarator directly around the name declares a
	// function. "int (*fp)(int)" is a pointer, "int *f(int)" a function.
	isFunc bool
}

func resolveDeclarator(n *tree_sitter.Node, source []byte) declarator {
	var d declarator
	wrapper := ""
	for n != nil {
		switch n.Kind() {
		case "identifier", "field_identifier", "type_identifier", "destructor_name", "operator_name":
			d.name = n
			d.isFunc = wrapper == "function_declarator"
			return d
		case "qualified_identifier":
			d.scope = lastComponent(n.ChildByFieldName("scope"), source)
			n = n.ChildByFieldName("name")
		case "template_function", "template_method":
			n = n.ChildByFieldName("name")
		case "init_declarator":
			n = n.ChildByFieldName("declarator")
		case "function_declarator", "pointer_declarator", "array_declarator":
			wrapper = n.Kind()
			n = n.ChildByFieldName("declarator")
		case "reference_declarator":
			wrapper = n.Kind()
			n = firstDeclaratorChild(n)
		case "parenthesized_declarator", "attributed_declarator":
			n = firstDeclaratorChild(n)
		default:
			return d
		}
	}
	return d
}

func firstDeclaratorChild(n *tree_sitter.Node) *tree_sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		switch c.Kind() {
		case "attribute_declaration", "ms_call_modifier", "type_qualifier", "attribute_specifier":
			continue
		}
		return c
	}
	return nil
}

func firstNamedChildOfKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}

// lastName returns the node holding the final component of a possibly
// qualified or templated name.
func lastName(n *tree_sitter.Node) *tree_sitter.Node {
	for n != nil {
		switch n.Kind() {
		case "qualified_identifier", "template_type", "nested_namespace_specifier":
			next := n.ChildByFieldName("name")
			if next == nil && n.NamedChildCount() > 0 {
				next = n.NamedChild(n.NamedChildCount() - 1)
			}
			n = next
		default:
			return n
		}
	}
	return nil
}

func lastComponent(n *tree_sitter.Node, source []byte) string {
	if name := lastName(n); name != nil {
		return nodeText(name, source)
	}
	return ""
}

// spelling is the canonical name clang would report for a name node.
func spelling(n *tree_sitter.Node, source []byte) string {
	text := nodeText(n, source)
	switch n.Kind() {
	case "operator_name":
		return normalizeOperator(text)
	case "destructor_name":
		return strings.Join(strings.Fields(text), "")
	}
	return text
}

// normalizeOperator drops the whitespace tree-sitter keeps inside operator
// names ("operator ==" -> "operator=="), keeping the space before keyword
// operators ("operator new").
func normalizeOperator(text string) string {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return text
	}
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, part := range parts[1:] {
		if r := rune(part[0]); unicode.IsLetter(r) || r == '_' {
			sb.WriteByte(' ')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

// nodeText returns the source text for a node.
func nodeText(n *tree_sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}
