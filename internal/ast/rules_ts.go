package ast

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// tsRules extends the JavaScript table with TypeScript-only declarations:
// interfaces, enums, type aliases, namespaces, and abstract classes.
func tsRules() *ruleTable {
	t := jsRules()
	t.language = lang.LangTypeScript

	t.transparent["ambient_declaration"] = true

	t.rules["interface_declaration"] = rule{kind: KindInterface, extract: extractTSInterface}
	t.rules["enum_declaration"] = rule{kind: KindEnum, extract: extractTSNamed}
	t.rules["type_alias_declaration"] = rule{kind: KindTypedef, extract: extractTSTypeAlias}
	t.rules["internal_module"] = rule{kind: KindNamespace, extract: extractTSNamed}
	t.rules["module"] = rule{kind: KindNamespace, extract: extractTSNamed}
	t.rules["abstract_class_declaration"] = rule{kind: KindClass, extract: extractJSClass}
	t.rules["public_field_definition"] = rule{
		kind:    KindVariable,
		when:    func(_ *syntax.CSTNode, parent *Node) bool { return isTypeLike(parent.Kind) },
		extract: extractTSField,
	}

	return t
}

func extractTSInterface(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("type_identifier"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("interface_body", "object_type")
	n.Signature = signatureBefore(cst, body)
}

func extractTSNamed(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("identifier", "type_identifier", "string", "nested_identifier"); name != nil {
		n.Name = stripStringQuotes(name.Content)
	}
	body := cst.FindChild("enum_body", "statement_block")
	n.Signature = signatureBefore(cst, body)
}

func extractTSTypeAlias(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("type_identifier"); name != nil {
		n.Name = name.Content
	}
	n.Signature = strings.TrimSuffix(strings.TrimSpace(firstLine(cst.Content)), ";")
}

func extractTSField(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("property_identifier"); name != nil {
		n.Name = name.Content
	}
	if typ := cst.FindChild("type_annotation"); typ != nil {
		n.ReturnType = jsAnnotationType(typ)
	}
	n.Signature = firstLine(cst.Content)
}
