package ports

// CursorKind is the syntactic category of a cursor. The values mirror the
// declaration kinds exposed by clang's cursor API so that category filters
// keep the same meaning regardless of which parser produced the tree.
type CursorKind int

const (
	KindUnexposed CursorKind = iota
	KindTranslationUnit
	KindUnexposedDecl
	KindStructDecl
	KindUnionDecl
	KindClassDecl
	KindEnumDecl
	KindFieldDecl
	KindEnumConstantDecl
	KindFunctionDecl
	KindVarDecl
	KindParmDecl
	KindTypedefDecl
	KindCXXMethod
	KindNamespace
	KindConstructor
	KindDestructor
	KindTemplateTypeParameter
	KindNonTypeTemplateParameter
	KindFunctionTemplate
	KindClassTemplate
	KindTypeAliasDecl
)

var kindNames = map[CursorKind]string{
	KindUnexposed:                "Unexposed",
	KindTranslationUnit:          "TranslationUnit",
	KindUnexposedDecl:            "UnexposedDecl",
	KindStructDecl:               "StructDecl",
	KindUnionDecl:                "UnionDecl",
	KindClassDecl:                "ClassDecl",
	KindEnumDecl:                 "EnumDecl",
	KindFieldDecl:                "FieldDecl",
	KindEnumConstantDecl:         "EnumConstantDecl",
	KindFunctionDecl:             "FunctionDecl",
	KindVarDecl:                  "VarDecl",
	KindParmDecl:                 "ParmDecl",
	KindTypedefDecl:              "TypedefDecl",
	KindCXXMethod:                "CXXMethod",
	KindNamespace:                "Namespace",
	KindConstructor:              "CXXConstructor",
	KindDestructor:               "CXXDestructor",
	KindTemplateTypeParameter:    "TemplateTypeParameter",
	KindNonTypeTemplateParameter: "NonTypeTemplateParameter",
	KindFunctionTemplate:         "FunctionTemplate",
	KindClassTemplate:            "ClassTemplate",
	KindTypeAliasDecl:            "TypeAliasDecl",
}

// String returns the clang spelling of the kind, e.g. "FunctionDecl".
func (k CursorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unexposed"
}

// IsDeclaration reports whether the kind names a declaration.
func (k CursorKind) IsDeclaration() bool {
	return k != KindUnexposed && k != KindTranslationUnit
}

// Location is the position a cursor was spelled at. Line and Column are
// 1-based; Column counts bytes, not runes.
type Location struct {
	File           string
	Line           int
	Column         int
	InSystemHeader bool
}

// Cursor is a read-only handle into a parsed syntax tree. Cursors are only
// valid while the TranslationUnit that produced them is open.
type Cursor interface {
	Kind() CursorKind
	// Spelling is the canonical name of the declaration, or "" when the
	// cursor has no name.
	Spelling() string
	Location() Location
	// Children returns the direct children in source order.
	Children() []Cursor
}

// TranslationUnit is the complete parsed representation of one source file.
type TranslationUnit interface {
	// Cursor returns the root cursor covering the whole file.
	Cursor() Cursor
	// Close releases the tree. Cursors must not be used afterwards.
	Close()
}
