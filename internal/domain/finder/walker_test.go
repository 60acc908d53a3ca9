package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/symfind/internal/ports"
)

func collect(t *testing.T, root ports.Cursor, q Query) ([]Match, WalkResult) {
	t.Helper()
	var got []Match
	res, err := Walk(root, NewTraversalContext(q, nil), func(m Match) error {
		got = append(got, m)
		return nil
	})
	require.NoError(t, err)
	return got, res
}

func TestWalk_PreOrder(t *testing.T) {
	root := unit(
		decl(ports.KindFunctionDecl, "x", 1, 6,
			decl(ports.KindParmDecl, "x", 1, 12),
			decl(ports.KindUnexposed, "", 1, 15,
				decl(ports.KindVarDecl, "x", 2, 9),
			),
		),
		decl(ports.KindVarDecl, "x", 4, 5),
	)

	var order []ports.CursorKind
	for _, cat := range []Category{CategoryFunction, CategoryParameter, CategoryVariable} {
		got, _ := collect(t, root, Query{Name: "x", Category: cat})
		for _, m := range got {
			order = append(order, m.Kind)
		}
	}
	assert.Equal(t, []ports.CursorKind{
		ports.KindFunctionDecl, ports.KindParmDecl, ports.KindVarDecl, ports.KindVarDecl,
	}, order)

	got, res := collect(t, root, Query{Name: "x", Category: CategoryVariable})
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Line, "nested variable comes before the later sibling")
	assert.Equal(t, 4, got[1].Line)
	assert.Equal(t, 5, res.Visited)
	assert.Nil(t, res.StoppedAt)
}

func TestWalk_RecordMatchesClassAndStruct(t *testing.T) {
	root := unit(
		decl(ports.KindClassDecl, "Foo", 1, 7),
		decl(ports.KindStructDecl, "Foo", 5, 8),
		decl(ports.KindUnionDecl, "Foo", 9, 7),
	)
	got, _ := collect(t, root, Query{Name: "Foo", Category: CategoryRecord})
	require.Len(t, got, 2)
	assert.Equal(t, ports.KindClassDecl, got[0].Kind)
	assert.Equal(t, ports.KindStructDecl, got[1].Kind)
}

func TestWalk_SystemHeaderStopsEntireWalk(t *testing.T) {
	root := unit(
		decl(ports.KindVarDecl, "count", 1, 5),
		systemHeader(decl(ports.KindVarDecl, "count", 10, 5)),
		decl(ports.KindVarDecl, "count", 3, 5),
	)
	got, res := collect(t, root, Query{Name: "count", Category: CategoryVariable})
	require.Len(t, got, 1, "matches after the system header must not be reported")
	assert.Equal(t, 1, got[0].Line)
	require.NotNil(t, res.StoppedAt)
	assert.Equal(t, "/usr/include/stdio.h", res.StoppedAt.File)
}

func TestWalk_SystemHeaderInsideSubtreeStopsSiblingsToo(t *testing.T) {
	root := unit(
		decl(ports.KindNamespace, "ns", 1, 11,
			systemHeader(),
			decl(ports.KindVarDecl, "v", 3, 5),
		),
		decl(ports.KindVarDecl, "v", 5, 5),
	)
	got, res := collect(t, root, Query{Name: "v", Category: CategoryVariable})
	assert.Empty(t, got)
	assert.NotNil(t, res.StoppedAt)
	assert.Equal(t, 1, res.Visited)
}

func TestWalk_SystemHeaderFirstYieldsNothing(t *testing.T) {
	root := unit(
		systemHeader(),
		decl(ports.KindFunctionDecl, "main", 3, 5),
	)
	got, res := collect(t, root, Query{Name: "main", Category: CategoryFunction})
	assert.Empty(t, got)
	assert.Equal(t, 0, res.Visited)
}

func TestWalk_CallbackErrorStops(t *testing.T) {
	root := unit(
		decl(ports.KindVarDecl, "a", 1, 5),
		decl(ports.KindVarDecl, "a", 2, 5),
	)
	calls := 0
	_, err := Walk(root, NewTraversalContext(Query{Name: "a", Category: CategoryVariable}, nil), func(Match) error {
		calls++
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestWalk_EmptyUnit(t *testing.T) {
	got, res := collect(t, unit(), Query{Name: "a", Category: CategoryVariable})
	assert.Empty(t, got)
	assert.Equal(t, 0, res.Visited)
}
