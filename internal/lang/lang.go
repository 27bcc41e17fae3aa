// Package lang defines the closed set of supported languages and the
// deterministic file-to-language detector.
package lang

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Language identifies a programming language for parsing.
type Language string

const (
	LangUnknown    Language = "unknown"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
)

// Supported lists every language with a registered grammar, in a fixed order.
var Supported = []Language{LangC, LangCPP, LangPython, LangJavaScript, LangTypeScript}

// Separator returns the qualified-name separator for the language.
// C++ uses "::"; every other language uses ".".
func (l Language) Separator() string {
	if l == LangCPP {
		return "::"
	}
	return "."
}

// extToLanguage maps file extensions to languages. Extensions that are
// ambiguous between C and C++ (.h) are resolved by content fingerprinting.
var extToLanguage = map[string]Language{
	".c":   LangC,
	".cc":  LangCPP,
	".cpp": LangCPP,
	".cxx": LangCPP,
	".hpp": LangCPP,
	".hxx": LangCPP,
	".hh":  LangCPP,
	".py":  LangPython,
	".pyw": LangPython,
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
}

var (
	cppFingerprint = regexp.MustCompile(`(?m)^\s*(class\s+\w+|namespace\s+\w+|template\s*<|using\s+namespace\b)|::|\bstd::`)
	cFingerprint   = regexp.MustCompile(`(?m)^\s*#\s*include\b`)
	pyFingerprint  = regexp.MustCompile(`(?m)^\s*(def\s+\w+\s*\(|class\s+\w+\s*[:(]|import\s+\w|from\s+\w+\s+import\b)`)
	jsFingerprint  = regexp.MustCompile(`(?m)^\s*(function\s+\w+\s*\(|const\s+\w+\s*=|module\.exports\b|export\s+(default|function|const|class)\b)`)
	tsFingerprint  = regexp.MustCompile(`(?m)^\s*(interface\s+\w+|type\s+\w+\s*=|enum\s+\w+)|:\s*(string|number|boolean|void)\b`)
)

// Detect determines the language of a file from its path and, when the
// extension is unmapped or ambiguous, a content sample. The same
// (path, content) pair always yields the same result. Content may be nil.
func Detect(path string, content []byte) Language {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".h" {
		// A .h header is C++ if it shows C++-only syntax, else C.
		if cppFingerprint.Match(content) {
			return LangCPP
		}
		return LangC
	}

	if l, ok := extToLanguage[ext]; ok {
		return l
	}

	return detectByContent(content)
}

// detectByContent inspects syntactic fingerprints in order of specificity.
// TypeScript is checked before JavaScript because every TS fingerprint is
// invalid JS, while JS fingerprints also match TS files.
func detectByContent(content []byte) Language {
	if len(content) == 0 {
		return LangUnknown
	}

	switch {
	case cFingerprint.Match(content) && cppFingerprint.Match(content):
		return LangCPP
	case cFingerprint.Match(content):
		return LangC
	case pyFingerprint.Match(content):
		return LangPython
	case tsFingerprint.Match(content):
		return LangTypeScript
	case jsFingerprint.Match(content):
		return LangJavaScript
	}
	return LangUnknown
}
