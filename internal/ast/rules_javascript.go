package ast

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/syntax"
)

func jsRules() *ruleTable {
	t := &ruleTable{
		language:  lang.LangJavaScript,
		separator: ".",
		transparent: map[string]bool{
			"export_statement": true,
		},
		callTypes: map[string]bool{"call_expression": true, "new_expression": true},
		callee:    jsCallee,
		observe:   map[string]func(*syntax.CSTNode, *builder){},
	}

	t.rules = map[string]rule{
		"function_declaration":           {kind: KindFunction, extract: extractJSFunction},
		"generator_function_declaration": {kind: KindFunction, extract: extractJSFunction},
		"class_declaration":              {kind: KindClass, extract: extractJSClass},
		"method_definition":              {kind: KindFunction, extract: extractJSMethod},
		"lexical_declaration":            {kind: KindVariable, extract: extractJSVariable},
		"variable_declaration":           {kind: KindVariable, extract: extractJSVariable},
		"import_statement":               {kind: KindInclude, extract: extractJSImport},
	}

	return t
}

func extractJSFunction(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("identifier"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("statement_block")
	n.Signature = signatureBefore(cst, body)
	n.ReturnType = jsReturnType(cst)
	if params := cst.FindChild("formal_parameters"); params != nil {
		n.Parameters = jsParameters(params)
	}
}

func extractJSClass(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("identifier", "type_identifier"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("class_body")
	n.Signature = signatureBefore(cst, body)
}

func extractJSMethod(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("property_identifier", "computed_property_name"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("statement_block")
	n.Signature = signatureBefore(cst, body)
	n.ReturnType = jsReturnType(cst)
	if params := cst.FindChild("formal_parameters"); params != nil {
		n.Parameters = jsParameters(params)
	}
}

// extractJSVariable maps a declaration statement. A declarator whose value
// is function-like declares a function; this is the general rule for the
// const-arrow-function idiom.
func extractJSVariable(cst *syntax.CSTNode, n *Node, _ *builder) {
	decl := cst.FindChild("variable_declarator")
	if decl == nil {
		return
	}
	if name := decl.FindChild("identifier"); name != nil {
		n.Name = name.Content
	}
	n.Signature = firstLine(cst.Content)

	if fn := decl.FindChild("arrow_function", "function_expression", "function", "generator_function"); fn != nil {
		n.Kind = KindFunction
		if params := fn.FindChild("formal_parameters"); params != nil {
			n.Parameters = jsParameters(params)
		} else if id := fn.FindChild("identifier"); id != nil && fn.Type == "arrow_function" {
			// Single-parameter arrow without parentheses: x => ...
			n.Parameters = []Parameter{{Name: id.Content, Type: "", Default: ""}}
		}
		n.ReturnType = jsReturnType(fn)
		if body := fn.FindChild("statement_block"); body != nil {
			n.Signature = signatureBefore(cst, body)
		}
	}

	if typ := decl.FindChild("type_annotation"); typ != nil && n.Kind == KindVariable {
		n.ReturnType = jsAnnotationType(typ)
	}
}

func extractJSImport(cst *syntax.CSTNode, n *Node, b *builder) {
	src := cst.FindChild("string")
	if src == nil {
		return
	}
	n.Name = stripStringQuotes(src.Content)
	n.Signature = firstLine(cst.Content)
	b.addImport(n.Name, false, n.Range)
}

// jsParameters reads formal_parameters: plain, defaulted, rest, destructured,
// and TypeScript's typed required/optional forms.
func jsParameters(params *syntax.CSTNode) []Parameter {
	out := []Parameter{}
	for _, p := range params.Children {
		switch p.Type {
		case "identifier":
			out = append(out, Parameter{Name: p.Content, Type: "", Default: ""})
		case "assignment_pattern":
			out = append(out, jsDefaultedParameter(p))
		case "rest_pattern":
			out = append(out, Parameter{Name: p.Content, Type: "", Default: ""})
		case "object_pattern", "array_pattern":
			out = append(out, Parameter{Name: firstLine(p.Content), Type: "", Default: ""})
		case "required_parameter", "optional_parameter":
			out = append(out, tsParameter(p))
		}
	}
	return out
}

func jsDefaultedParameter(p *syntax.CSTNode) Parameter {
	param := Parameter{Name: "", Type: "", Default: ""}
	if id := p.FindChild("identifier"); id != nil {
		param.Name = id.Content
	}
	if i := strings.Index(p.Content, "="); i >= 0 {
		param.Default = strings.TrimSpace(p.Content[i+1:])
	}
	return param
}

// tsParameter reads a TypeScript required_parameter or optional_parameter.
func tsParameter(p *syntax.CSTNode) Parameter {
	param := Parameter{Name: "", Type: "", Default: ""}
	if id := p.FindChild("identifier", "object_pattern", "array_pattern", "rest_pattern"); id != nil {
		param.Name = firstLine(id.Content)
	}
	if typ := p.FindChild("type_annotation"); typ != nil {
		param.Type = jsAnnotationType(typ)
	}
	if p.Type == "optional_parameter" {
		param.Name += "?"
	}
	if eq := strings.Index(p.Content, "="); eq >= 0 {
		param.Default = strings.TrimSpace(p.Content[eq+1:])
	}
	return param
}

// jsReturnType reads a direct type_annotation child (TypeScript); plain
// JavaScript has none and yields "".
func jsReturnType(cst *syntax.CSTNode) string {
	if typ := cst.FindChild("type_annotation"); typ != nil {
		return jsAnnotationType(typ)
	}
	return ""
}

func jsAnnotationType(annotation *syntax.CSTNode) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(annotation.Content), ":"))
}

func jsCallee(cst *syntax.CSTNode) (string, syntax.SourceRange, bool) {
	fn := cst.FindChild("identifier", "member_expression")
	if fn == nil {
		return "", syntax.SourceRange{}, false
	}
	name := firstLine(fn.Content)
	if name == "" {
		return "", syntax.SourceRange{}, false
	}
	return name, cst.Range, true
}
