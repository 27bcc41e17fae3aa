package ast

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/syntax"
)

func pythonRules() *ruleTable {
	t := &ruleTable{
		language:  lang.LangPython,
		separator: ".",
		transparent: map[string]bool{
			"decorated_definition": true,
		},
		callTypes: map[string]bool{"call": true},
		callee:    pyCallee,
		observe:   map[string]func(*syntax.CSTNode, *builder){},
	}

	t.rules = map[string]rule{
		"function_definition":   {kind: KindFunction, extract: extractPyFunction},
		"class_definition":      {kind: KindClass, extract: extractPyClass},
		"import_statement":      {kind: KindInclude, extract: extractPyImport},
		"import_from_statement": {kind: KindInclude, extract: extractPyFromImport},
		"expression_statement": {
			kind:    KindVariable,
			when:    pyModuleAssignment,
			extract: extractPyAssignment,
		},
	}

	return t
}

func extractPyFunction(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("identifier"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("block")
	n.Signature = signatureBefore(cst, body)
	if rt := cst.FindChild("type"); rt != nil {
		n.ReturnType = strings.TrimSpace(rt.Content)
	}
	if params := cst.FindChild("parameters"); params != nil {
		n.Parameters = pyParameters(params)
	}
	n.Docstring = pyDocstring(body)
}

func extractPyClass(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("identifier"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("block")
	n.Signature = signatureBefore(cst, body)
	n.Docstring = pyDocstring(body)
}

func extractPyImport(cst *syntax.CSTNode, n *Node, b *builder) {
	// "import a.b, c" — one AST node, one import edge per dotted name.
	var targets []string
	for _, c := range cst.Children {
		switch c.Type {
		case "dotted_name":
			targets = append(targets, c.Content)
		case "aliased_import":
			if name := c.FindChild("dotted_name"); name != nil {
				targets = append(targets, name.Content)
			}
		}
	}
	n.Name = strings.Join(targets, ", ")
	n.Signature = firstLine(cst.Content)
	for _, tgt := range targets {
		b.addImport(tgt, false, n.Range)
	}
}

func extractPyFromImport(cst *syntax.CSTNode, n *Node, b *builder) {
	module := cst.FindChild("dotted_name", "relative_import")
	if module == nil {
		return
	}
	n.Name = module.Content
	n.Signature = firstLine(cst.Content)
	b.addImport(module.Content, false, n.Range)
}

// pyModuleAssignment matches module- or class-level "x = ..." statements;
// anything else (docstring expressions, calls) is not a declaration.
func pyModuleAssignment(cst *syntax.CSTNode, parent *Node) bool {
	if parent.Kind != KindRoot && parent.Kind != KindClass {
		return false
	}
	assign := cst.FindChild("assignment")
	if assign == nil {
		return false
	}
	return assign.FindChild("identifier") != nil
}

func extractPyAssignment(cst *syntax.CSTNode, n *Node, _ *builder) {
	assign := cst.FindChild("assignment")
	if assign == nil {
		return
	}
	if id := assign.FindChild("identifier"); id != nil {
		n.Name = id.Content
	}
	if typ := assign.FindChild("type"); typ != nil {
		n.ReturnType = strings.TrimSpace(typ.Content)
	}
	n.Signature = firstLine(cst.Content)
}

// pyParameters reads a "parameters" node: plain, typed, defaulted, and
// splat forms.
func pyParameters(params *syntax.CSTNode) []Parameter {
	out := []Parameter{}
	for _, p := range params.Children {
		switch p.Type {
		case "identifier":
			out = append(out, Parameter{Name: p.Content, Type: "", Default: ""})
		case "typed_parameter":
			param := Parameter{Name: "", Type: "", Default: ""}
			if id := p.FindChild("identifier"); id != nil {
				param.Name = id.Content
			}
			if typ := p.FindChild("type"); typ != nil {
				param.Type = strings.TrimSpace(typ.Content)
			}
			out = append(out, param)
		case "default_parameter", "typed_default_parameter":
			param := Parameter{Name: "", Type: "", Default: ""}
			if id := p.FindChild("identifier"); id != nil {
				param.Name = id.Content
			}
			if typ := p.FindChild("type"); typ != nil {
				param.Type = strings.TrimSpace(typ.Content)
			}
			if i := strings.Index(p.Content, "="); i >= 0 {
				param.Default = strings.TrimSpace(p.Content[i+1:])
			}
			out = append(out, param)
		case "list_splat_pattern", "dictionary_splat_pattern":
			out = append(out, Parameter{Name: p.Content, Type: "", Default: ""})
		}
	}
	return out
}

// pyDocstring returns the docstring of a block: a string expression as the
// first statement, with quotes stripped.
func pyDocstring(body *syntax.CSTNode) string {
	if body == nil {
		return ""
	}
	first := body.FindChild("expression_statement")
	if first == nil {
		return ""
	}
	// The docstring must be the first statement, not merely the first
	// expression_statement anywhere in the block.
	for _, c := range body.Children {
		if c.Type == syntax.NodeTypeGap || c.Type == "comment" {
			continue
		}
		if c != first {
			return ""
		}
		break
	}
	str := first.FindChild("string")
	if str == nil {
		return ""
	}
	return stripStringQuotes(str.Content)
}

func pyCallee(cst *syntax.CSTNode) (string, syntax.SourceRange, bool) {
	fn := cst.FindChild("identifier", "attribute")
	if fn == nil {
		return "", syntax.SourceRange{}, false
	}
	name := firstLine(fn.Content)
	if name == "" {
		return "", syntax.SourceRange{}, false
	}
	return name, cst.Range, true
}
