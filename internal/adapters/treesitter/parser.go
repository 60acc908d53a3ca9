// Package treesitter turns C, C++ and CUDA sources into clang-style cursor
// trees using tree-sitter grammars. It is the parser behind symfind: the
// finder only sees ports.Cursor values with a kind, a spelling and a
// location.
//
// C, C++ and CUDA grammars are compiled in via CGo. Additional grammars can be
// loaded at runtime from shared libraries via purego.
package treesitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symfind/internal/ports"
)

var (
	// ErrUnsupportedLanguage means no grammar is available for the file.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrParseFailed means tree-sitter returned no tree.
	ErrParseFailed = errors.New("parse failed")
)

// maxIncludeDepth bounds how far nested includes are followed when deciding
// whether a system header contributes declarations.
const maxIncludeDepth = 16

// Parser is the parsing context. It owns the grammars and the system header
// cache, and must be closed after every TranslationUnit it produced.
type Parser struct {
	languages  map[string]*tree_sitter.Language // lang name -> language
	extToLang  map[string]string                // extension -> lang name
	loader     *DynamicLoader                   // optional: loads grammars from .so/.dylib
	forceLang  string
	systemDirs []string
	headers    map[string]bool // system header path -> contributes cursors
}

// NewParser creates a parser with all built-in grammars registered and the
// default system include directories.
func NewParser() *Parser {
	p := &Parser{
		languages:  make(map[string]*tree_sitter.Language),
		extToLang:  make(map[string]string),
		systemDirs: DefaultSystemIncludeDirs(),
		headers:    make(map[string]bool),
	}
	p.registerBuiltinLanguages()
	p.registerExtensions()
	return p
}

// addLang registers a language by name.
func (p *Parser) addLang(name string, lang *tree_sitter.Language) {
	if lang != nil {
		p.languages[name] = lang
	}
}

// addExt maps file extensions to a language name.
func (p *Parser) addExt(lang string, exts ...string) {
	for _, ext := range exts {
		p.extToLang[ext] = lang
	}
}

// SetGrammarPaths enables loading grammars from shared libraries found in
// paths, searched in order.
func (p *Parser) SetGrammarPaths(paths []string) {
	if p.loader != nil {
		p.loader.Close()
	}
	p.loader = NewDynamicLoader(paths)
}

// Loader returns the dynamic grammar loader, or nil if not configured.
func (p *Parser) Loader() *DynamicLoader {
	return p.loader
}

// SetSystemIncludeDirs replaces the directories searched for system headers.
func (p *Parser) SetSystemIncludeDirs(dirs []string) {
	p.systemDirs = append([]string(nil), dirs...)
	p.headers = make(map[string]bool)
}

// SystemIncludeDirs returns the directories searched for system headers.
func (p *Parser) SystemIncludeDirs() []string {
	return p.systemDirs
}

// SetLanguage forces every file to be parsed as lang instead of detecting
// the language from the extension. An empty lang restores detection.
func (p *Parser) SetLanguage(lang string) error {
	if lang != "" && !p.HasLanguage(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	p.forceLang = lang
	return nil
}

// SupportsExtension returns true if the parser recognizes this file extension.
func (p *Parser) SupportsExtension(ext string) bool {
	_, ok := p.extToLang[strings.ToLower(ext)]
	return ok
}

// HasLanguage returns true if a grammar is available (compiled-in or
// dynamically loadable) for the given language name.
func (p *Parser) HasLanguage(lang string) bool {
	if _, ok := p.languages[lang]; ok {
		return true
	}
	if p.loader != nil {
		return p.loader.GrammarPath(lang) != ""
	}
	return false
}

// ParseTranslationUnit implements ports.Parser. Every failure wraps
// ErrParseFailed. System headers are re-examined on every call, so a
// reused parser sees edits made between runs.
func (p *Parser) ParseTranslationUnit(path string) (ports.TranslationUnit, error) {
	p.headers = make(map[string]bool)
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	tu, err := p.Parse(path, source)
	if err != nil {
		if errors.Is(err, ErrParseFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return tu, nil
}

// Parse parses source as the contents of path. The caller must Close the
// returned unit.
func (p *Parser) Parse(path string, source []byte) (*TranslationUnit, error) {
	langName := p.forceLang
	if langName == "" {
		langName = p.detectLanguage(path)
	}
	if langName == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Base(path))
	}
	lang, err := p.language(langName)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tree, err := parseTree(lang, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tu := newTranslationUnit(p, path, langName, source, tree)
	tu.collectRecords()
	log.Debug().
		Str("file", path).
		Str("lang", langName).
		Dur("took", time.Since(start)).
		Bool("syntax_errors", tu.HasErrors()).
		Msg("treesitter: parsed translation unit")
	return tu, nil
}

// Close releases dynamically loaded grammars. Units produced by p must be
// closed first.
func (p *Parser) Close() {
	if p.loader != nil {
		p.loader.Close()
	}
	p.headers = make(map[string]bool)
}

func parseTree(lang *tree_sitter.Language, source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, err
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, ErrParseFailed
	}
	return tree, nil
}

// language returns a compiled-in grammar, falling back to the dynamic loader.
func (p *Parser) language(name string) (*tree_sitter.Language, error) {
	if lang, ok := p.languages[name]; ok {
		return lang, nil
	}
	if p.loader == nil {
		return nil, fmt.Errorf("%w: %q has no compiled-in grammar", ErrUnsupportedLanguage, name)
	}
	lang, err := p.loader.LoadGrammar(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, err)
	}
	return lang, nil
}

// detectLanguage determines the language from the file path.
func (p *Parser) detectLanguage(filePath string) string {
	ext := filepath.Ext(filePath)
	if lang, ok := p.extToLang[ext]; ok {
		return lang
	}
	return p.extToLang[strings.ToLower(ext)]
}
