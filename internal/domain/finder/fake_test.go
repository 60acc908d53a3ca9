package finder

import (
	"errors"

	"github.com/corey/symfind/internal/ports"
)

// fakeCursor is an in-memory cursor tree for exercising the walker without a
// real parser.
type fakeCursor struct {
	kind     ports.CursorKind
	spelling string
	loc      ports.Location
	children []ports.Cursor
}

func (c *fakeCursor) Kind() ports.CursorKind   { return c.kind }
func (c *fakeCursor) Spelling() string         { return c.spelling }
func (c *fakeCursor) Location() ports.Location { return c.loc }
func (c *fakeCursor) Children() []ports.Cursor { return c.children }

func decl(kind ports.CursorKind, name string, line, col int, children ...ports.Cursor) *fakeCursor {
	return &fakeCursor{
		kind:     kind,
		spelling: name,
		loc:      ports.Location{File: "main.cpp", Line: line, Column: col},
		children: children,
	}
}

func systemHeader(children ...ports.Cursor) *fakeCursor {
	return &fakeCursor{
		kind:     ports.KindUnexposedDecl,
		loc:      ports.Location{File: "/usr/include/stdio.h", Line: 1, Column: 1, InSystemHeader: true},
		children: children,
	}
}

func unit(children ...ports.Cursor) *fakeCursor {
	return &fakeCursor{kind: ports.KindTranslationUnit, children: children}
}

type fakeUnit struct {
	root   ports.Cursor
	closed *[]string
}

func (u *fakeUnit) Cursor() ports.Cursor { return u.root }
func (u *fakeUnit) Close()               { *u.closed = append(*u.closed, "unit") }

type fakeParser struct {
	root   ports.Cursor
	err    error
	closed []string
}

func (p *fakeParser) ParseTranslationUnit(string) (ports.TranslationUnit, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &fakeUnit{root: p.root, closed: &p.closed}, nil
}

func (p *fakeParser) Close() { p.closed = append(p.closed, "parser") }

var errBoom = errors.New("boom")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBoom }
