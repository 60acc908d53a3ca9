package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// DynamicLoader loads tree-sitter grammars from shared libraries (.so on
// Linux, .dylib on macOS) using purego. Loaded languages are cached for the
// loader's lifetime.
type DynamicLoader struct {
	searchPaths []string
	mu          sync.Mutex
	loaded      map[string]*tree_sitter.Language
	handles     []uintptr
}

// NewDynamicLoader creates a loader that searches paths in order; the first
// match wins.
func NewDynamicLoader(searchPaths []string) *DynamicLoader {
	return &DynamicLoader{
		searchPaths: searchPaths,
		loaded:      make(map[string]*tree_sitter.Language),
	}
}

// DefaultGrammarPaths returns ~/.symfind/grammars when a home directory is
// known.
func DefaultGrammarPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".symfind", "grammars")}
}

// LibExtension returns the shared library extension for the current platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// CSymbolName returns the exported constructor of a grammar, e.g.
// tree_sitter_cpp for "cpp".
func CSymbolName(lang string) string {
	return "tree_sitter_" + strings.ReplaceAll(lang, "-", "_")
}

// LoadGrammar loads the grammar for lang. Results are cached.
func (dl *DynamicLoader) LoadGrammar(lang string) (*tree_sitter.Language, error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if cached, ok := dl.loaded[lang]; ok {
		return cached, nil
	}

	soPath := dl.grammarPath(lang)
	if soPath == "" {
		return nil, fmt.Errorf("grammar %q: shared library not found in %v", lang, dl.searchPaths)
	}

	handle, err := purego.Dlopen(soPath, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("grammar %q: dlopen %s: %w", lang, soPath, err)
	}

	symName := CSymbolName(lang)
	sym, err := purego.Dlsym(handle, symName)
	if err != nil {
		purego.Dlclose(handle)
		return nil, fmt.Errorf("grammar %q: %s not exported by %s: %w", lang, symName, soPath, err)
	}
	dl.handles = append(dl.handles, handle)

	var langFunc func() uintptr
	purego.RegisterFunc(&langFunc, sym)
	ptr := langFunc()
	if ptr == 0 {
		return nil, fmt.Errorf("grammar %q: %s() returned null", lang, symName)
	}

	// ptr is a static TSLanguage* owned by the shared library, not Go memory.
	language := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))
	dl.loaded[lang] = language
	return language, nil
}

// GrammarPath returns the shared library for lang, or "" if none is found.
func (dl *DynamicLoader) GrammarPath(lang string) string {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.grammarPath(lang)
}

func (dl *DynamicLoader) grammarPath(lang string) string {
	name := lang + LibExtension()
	for _, dir := range dl.searchPaths {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate
		}
	}
	return ""
}

// InstalledGrammars returns the language names found in the search paths.
func (dl *DynamicLoader) InstalledGrammars() []string {
	ext := LibExtension()
	seen := make(map[string]bool)
	var names []string
	for _, dir := range dl.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ext) {
				continue
			}
			lang := strings.TrimSuffix(name, ext)
			if !seen[lang] {
				seen[lang] = true
				names = append(names, lang)
			}
		}
	}
	return names
}

// SearchPaths returns the configured search paths.
func (dl *DynamicLoader) SearchPaths() []string {
	return dl.searchPaths
}

// Close forgets loaded languages and closes the libraries. Units parsed with
// a dynamically loaded grammar must be closed first.
func (dl *DynamicLoader) Close() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	for _, h := range dl.handles {
		purego.Dlclose(h)
	}
	dl.handles = nil
	dl.loaded = make(map[string]*tree_sitter.Language)
}
