package ast

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// extractFunc fills semantic fields of an AST node from its CST subtree.
type extractFunc func(cst *syntax.CSTNode, n *Node, b *builder)

// rule maps one grammar node type to a semantic kind plus its extraction
// logic. A nil when matches unconditionally.
type rule struct {
	kind    Kind
	when    func(cst *syntax.CSTNode, parent *Node) bool
	extract extractFunc
}

// ruleTable is the per-language compliance table: grammar node type to
// semantic rule, plus language-wide concerns (qualified-name separator,
// transparent wrapper types, reference-site extraction). Rule tables replace
// any per-file special casing: a construct either has a general rule here or
// it is not mapped.
type ruleTable struct {
	language  lang.Language
	separator string
	rules     map[string]rule

	// transparent types wrap declarations without being declarations
	// themselves (decorated_definition, template_declaration, export
	// statements). The builder descends through them in place.
	transparent map[string]bool

	// callTypes are grammar types that constitute identifier-use sites.
	// callee extracts the referenced name from such a node.
	callTypes map[string]bool
	callee    func(cst *syntax.CSTNode) (string, syntax.SourceRange, bool)

	// observe handles grammar types that contribute file facts without
	// producing an AST node (e.g. C++ using directives).
	observe map[string]func(cst *syntax.CSTNode, b *builder)
}

// tableFor returns the compliance table for a language, or nil when the
// language has no semantic rules (Unknown).
func tableFor(l lang.Language) *ruleTable {
	switch l {
	case lang.LangC:
		return cRules()
	case lang.LangCPP:
		return cppRules()
	case lang.LangPython:
		return pythonRules()
	case lang.LangJavaScript:
		return jsRules()
	case lang.LangTypeScript:
		return tsRules()
	}
	return nil
}

// --- Shared extraction helpers ---

// signatureBefore returns the node's raw content up to (not including) the
// given body child, with trailing whitespace and opening braces trimmed.
// Trailing colons stay: they are part of a Python signature. When body is
// nil the whole content is used.
func signatureBefore(cst *syntax.CSTNode, body *syntax.CSTNode) string {
	content := cst.Content
	if body != nil && body.Content != "" {
		if i := strings.LastIndex(content, body.Content); i >= 0 {
			content = content[:i]
		}
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(content), "{"))
}

// firstLine returns the first line of s, trimmed.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// cleanComment strips comment markers from a block or line comment chain.
func cleanComment(raw string) string {
	raw = strings.TrimSpace(raw)
	var lines []string
	if strings.HasPrefix(raw, "/*") {
		raw = strings.TrimPrefix(raw, "/**")
		raw = strings.TrimPrefix(raw, "/*")
		raw = strings.TrimSuffix(raw, "*/")
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "*")
			line = strings.TrimSpace(line)
			lines = append(lines, line)
		}
	} else {
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "//")
			line = strings.TrimPrefix(line, "#")
			line = strings.TrimSpace(line)
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// stripStringQuotes removes surrounding quote characters from a string
// literal, including Python triple quotes and raw/byte prefixes.
func stripStringQuotes(s string) string {
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		c := s[0]
		if c == 'r' || c == 'b' || c == 'u' || c == 'f' || c == 'R' || c == 'B' || c == 'U' || c == 'F' {
			s = s[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`, "`"} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	return s
}

// isTypeLike reports whether a node introduces a member scope: functions
// declared directly inside it are methods.
func isTypeLike(k Kind) bool {
	switch k {
	case KindClass, KindStruct, KindUnion, KindInterface:
		return true
	}
	return false
}
