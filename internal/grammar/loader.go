// Package grammar loads the native tree-sitter-clojure grammar shared
// library at runtime and exposes it as a *sitter.Language. Grounded on
// the discovery order documented by the original tool's JVM native
// loader: an explicit override, a bundled resource path, then the
// system library search path.
package grammar

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

static void *lispfmt_dlopen(const char *path) {
	return dlopen(path, RTLD_NOW | RTLD_GLOBAL);
}

static void *lispfmt_dlsym(void *handle, const char *name) {
	return dlsym(handle, name);
}
*/
import "C"

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
)

// EnvOverride names the environment variable that, when set, points
// directly at the tree-sitter-clojure shared library and skips all
// other discovery.
const EnvOverride = "LISPFMT_CLOJURE_GRAMMAR"

const grammarSymbol = "tree_sitter_clojure"

var (
	once    sync.Once
	lang    *sitter.Language
	loadErr error
)

// ClojureLanguage returns the process-wide *sitter.Language for
// Clojure, loading the native grammar library on first use. The
// result is cached for the life of the process (spec.md §5's
// "immutable dependency, established once per process").
func ClojureLanguage() (*sitter.Language, error) {
	once.Do(func() {
		lang, loadErr = load()
	})
	return lang, loadErr
}

func load() (*sitter.Language, error) {
	path, err := locateLibrary()
	if err != nil {
		return nil, err
	}

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.lispfmt_dlopen(cpath)
	if handle == nil {
		return nil, fmt.Errorf("open grammar library %s: %s", path, dlError())
	}

	csym := C.CString(grammarSymbol)
	defer C.free(unsafe.Pointer(csym))

	sym := C.lispfmt_dlsym(handle, csym)
	if sym == nil {
		return nil, fmt.Errorf("resolve symbol %s in %s: %s", grammarSymbol, path, dlError())
	}

	return sitter.NewLanguage(unsafe.Pointer(sym)), nil
}

func dlError() string {
	msg := C.dlerror()
	if msg == nil {
		return "unknown error"
	}
	return C.GoString(msg)
}

// locateLibrary implements the three-step discovery order: explicit
// override, a "grammars" directory bundled next to the executable,
// then well-known system library directories.
func locateLibrary() (string, error) {
	if p := os.Getenv(EnvOverride); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s points to a missing file: %s", EnvOverride, p)
		}
		return p, nil
	}

	name := libraryName()

	if exe, err := os.Executable(); err == nil {
		bundled := filepath.Join(filepath.Dir(exe), "grammars", name)
		if _, err := os.Stat(bundled); err == nil {
			return bundled, nil
		}
	}

	for _, dir := range systemLibraryDirs() {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf(
		"could not locate %s: set %s, bundle it in a grammars/ directory next to the executable, or install it in a system library path",
		name, EnvOverride,
	)
}

func libraryName() string {
	if runtime.GOOS == "darwin" {
		return "libtree-sitter-clojure.dylib"
	}
	return "libtree-sitter-clojure.so"
}

func systemLibraryDirs() []string {
	if runtime.GOOS == "darwin" {
		return []string{"/opt/homebrew/lib", "/usr/local/lib"}
	}
	return []string{"/usr/lib", "/usr/local/lib"}
}
