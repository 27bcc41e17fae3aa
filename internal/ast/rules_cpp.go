package ast

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// cppRules extends the C table with classes, namespaces, templates, and
// using directives. The qualified-name separator is "::".
func cppRules() *ruleTable {
	t := cRules()
	t.language = lang.LangCPP
	t.separator = "::"

	// Templates wrap the declaration they parameterize.
	t.transparent["template_declaration"] = true
	t.transparent["linkage_specification"] = true

	t.rules["class_specifier"] = rule{
		kind:    KindClass,
		when:    hasBody("field_declaration_list"),
		extract: extractCTypeSpecifier,
	}
	t.rules["namespace_definition"] = rule{kind: KindNamespace, extract: extractCppNamespace}

	// Member prototypes inside a class body are methods; data members are
	// variables. Both arrive as field_declaration.
	t.rules["field_declaration"] = rule{
		kind:    KindVariable,
		when:    func(_ *syntax.CSTNode, parent *Node) bool { return isTypeLike(parent.Kind) },
		extract: extractCppField,
	}

	t.observe["using_declaration"] = observeCppUsing
	t.observe["using_directive"] = observeCppUsing

	return t
}

func extractCppNamespace(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("namespace_identifier", "identifier", "nested_namespace_specifier"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("declaration_list")
	n.Signature = signatureBefore(cst, body)
}

// extractCppField classifies a class member: a declarator chain containing a
// function_declarator is a method prototype, anything else a data member.
func extractCppField(cst *syntax.CSTNode, n *Node, _ *builder) {
	extractCDeclaration(cst, n, nil)
	if n.Kind == KindFunction {
		n.Kind = KindMethod
		n.Parameters = cParameters(cst)
	}
}

func observeCppUsing(cst *syntax.CSTNode, b *builder) {
	// "using namespace std;" / "using std::vector;" — keep the target text.
	target := strings.TrimSpace(cst.Content)
	target = strings.TrimPrefix(target, "using")
	target = strings.TrimSpace(target)
	target = strings.TrimPrefix(target, "namespace")
	target = strings.TrimSuffix(strings.TrimSpace(target), ";")
	if target != "" {
		b.facts.Usings = append(b.facts.Usings, target)
	}
}
