package project

import (
	"path/filepath"
	"strings"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
)

// pathResolver rewrites raw import/include targets (as extracted during AST
// building) into project-relative file paths matching ParseResult.Path
// values. It probes only the known file set, never the filesystem.
type pathResolver struct {
	fileSet map[string]bool
}

func newPathResolver(knownFiles []string) *pathResolver {
	r := &pathResolver{fileSet: make(map[string]bool, len(knownFiles))}
	for _, f := range knownFiles {
		r.fileSet[filepath.ToSlash(f)] = true
	}
	return r
}

var jsExtensions = []string{".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.tsx", "/index.js"}

// resolve maps one import edge to a project file path. The second result is
// false for external targets (system headers, stdlib and third-party
// modules), which produce no dependency edge.
func (r *pathResolver) resolve(imp ast.Import, language lang.Language, sourceFile string) (string, bool) {
	switch language {
	case lang.LangC, lang.LangCPP:
		return r.resolveInclude(imp, sourceFile)
	case lang.LangPython:
		return r.resolvePython(imp.Target, sourceFile)
	case lang.LangJavaScript, lang.LangTypeScript:
		return r.resolveJS(imp.Target, sourceFile)
	}
	return "", false
}

// resolveInclude handles #include: quoted includes are looked up relative
// to the including file's directory, then from the project root. System
// includes are external by definition.
func (r *pathResolver) resolveInclude(imp ast.Import, sourceFile string) (string, bool) {
	if imp.IsSystem {
		return "", false
	}
	sourceDir := filepath.Dir(sourceFile)
	candidates := []string{
		filepath.ToSlash(filepath.Clean(filepath.Join(sourceDir, imp.Target))),
		filepath.ToSlash(filepath.Clean(imp.Target)),
	}
	for _, c := range candidates {
		if r.fileSet[c] {
			return c, true
		}
	}
	return "", false
}

// resolvePython maps a dotted module name to a file. Relative imports count
// leading dots for parent traversal; absolute imports are tried from the
// project root and treated as external when absent.
func (r *pathResolver) resolvePython(target, sourceFile string) (string, bool) {
	dots := 0
	for dots < len(target) && target[dots] == '.' {
		dots++
	}
	modulePart := target[dots:]

	if dots > 0 {
		baseDir := filepath.Dir(sourceFile)
		for i := 1; i < dots; i++ {
			baseDir = filepath.Dir(baseDir)
		}
		if modulePart == "" {
			return r.probe(filepath.Join(baseDir, "__init__"), []string{".py"})
		}
		rel := strings.ReplaceAll(modulePart, ".", "/")
		return r.probe(filepath.Join(baseDir, rel), []string{".py", "/__init__.py"})
	}

	rel := strings.ReplaceAll(modulePart, ".", "/")
	return r.probe(rel, []string{".py", "/__init__.py"})
}

// resolveJS maps a relative specifier using the conventional extension
// probe order. Bare specifiers are external packages.
func (r *pathResolver) resolveJS(target, sourceFile string) (string, bool) {
	if !strings.HasPrefix(target, "./") && !strings.HasPrefix(target, "../") {
		return "", false
	}
	base := filepath.Clean(filepath.Join(filepath.Dir(sourceFile), target))
	return r.probe(base, jsExtensions)
}

// probe checks basePath with each extension appended against the known
// file set.
func (r *pathResolver) probe(basePath string, extensions []string) (string, bool) {
	basePath = filepath.ToSlash(basePath)
	if r.fileSet[basePath] {
		return basePath, true
	}
	for _, ext := range extensions {
		if candidate := basePath + ext; r.fileSet[candidate] {
			return candidate, true
		}
	}
	return "", false
}
