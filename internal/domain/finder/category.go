package finder

import (
	"fmt"
	"strings"

	"github.com/corey/symfind/internal/ports"
)

// Category is the user-facing declaration filter.
type Category int

const (
	// CategoryNone means no category flag was given. It resolves to an empty
	// kind filter, so nothing matches.
	CategoryNone Category = iota
	CategoryFunction
	// CategoryInsensitiveOnly is the legacy "-I" selector. It carries no kind
	// filter of its own and does not enable case folding; pair it with
	// IgnoreCase. Like CategoryNone it matches nothing.
	CategoryInsensitiveOnly
	CategoryMember
	CategoryParameter
	CategoryRecord
	CategoryVariable
)

var categoryNames = []struct {
	cat  Category
	name string
}{
	{CategoryNone, "none"},
	{CategoryFunction, "function"},
	{CategoryInsensitiveOnly, "insensitive-only"},
	{CategoryMember, "member"},
	{CategoryParameter, "parameter"},
	{CategoryRecord, "record"},
	{CategoryVariable, "variable"},
}

func (c Category) String() string {
	for _, cn := range categoryNames {
		if cn.cat == c {
			return cn.name
		}
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory maps a category name (case-insensitive) to its Category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return CategoryNone, nil
	}
	for _, cn := range categoryNames {
		if cn.name == name {
			return cn.cat, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown category %q", s)
}

// KindFilter is the set of cursor kinds a category matches. It has at most
// two elements and is never modified after ResolveKinds builds it.
type KindFilter []ports.CursorKind

// Contains reports whether kind is in the filter. An empty filter contains
// nothing.
func (f KindFilter) Contains(kind ports.CursorKind) bool {
	for _, k := range f {
		if k == kind {
			return true
		}
	}
	return false
}

// ResolveKinds returns the cursor kinds considered equivalent for c.
// Record unifies struct and class declarations. Unknown categories resolve
// to an empty filter.
func ResolveKinds(c Category) KindFilter {
	switch c {
	case CategoryFunction:
		return KindFilter{ports.KindFunctionDecl}
	case CategoryMember:
		return KindFilter{ports.KindCXXMethod}
	case CategoryParameter:
		return KindFilter{ports.KindParmDecl}
	case CategoryRecord:
		return KindFilter{ports.KindStructDecl, ports.KindClassDecl}
	case CategoryVariable:
		return KindFilter{ports.KindVarDecl}
	default:
		return KindFilter{}
	}
}
