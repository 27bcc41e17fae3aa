package ast

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// cTypeSpecifiers are the grammar types that can serve as the type part of a
// C declaration or function definition.
var cTypeSpecifiers = map[string]bool{
	"primitive_type":       true,
	"type_identifier":      true,
	"sized_type_specifier": true,
	"struct_specifier":     true,
	"union_specifier":      true,
	"enum_specifier":       true,
	"macro_type_specifier": true,
}

// cDeclaratorWrappers are declarator node types that wrap the declared name.
var cDeclaratorWrappers = map[string]bool{
	"pointer_declarator":       true,
	"function_declarator":      true,
	"array_declarator":         true,
	"parenthesized_declarator": true,
	"init_declarator":          true,
	"reference_declarator":     true,
}

func cRules() *ruleTable {
	t := &ruleTable{
		language:    lang.LangC,
		separator:   ".",
		transparent: map[string]bool{},
		callTypes:   map[string]bool{"call_expression": true},
		callee:      cCallee,
		observe:     map[string]func(*syntax.CSTNode, *builder){},
	}

	t.rules = map[string]rule{
		"function_definition": {kind: KindFunction, extract: extractCFunction},
		"declaration": {
			kind:    KindVariable,
			when:    cTopLevel,
			extract: extractCDeclaration,
		},
		"struct_specifier": {
			kind:    KindStruct,
			when:    hasBody("field_declaration_list"),
			extract: extractCTypeSpecifier,
		},
		"union_specifier": {
			kind:    KindUnion,
			when:    hasBody("field_declaration_list"),
			extract: extractCTypeSpecifier,
		},
		"enum_specifier": {
			kind:    KindEnum,
			when:    hasBody("enumerator_list"),
			extract: extractCTypeSpecifier,
		},
		"type_definition":      {kind: KindTypedef, extract: extractCTypedef},
		"preproc_include":      {kind: KindInclude, extract: extractCInclude},
		"preproc_def":          {kind: KindMacro, extract: extractCMacro},
		"preproc_function_def": {kind: KindMacro, extract: extractCMacro},
		"field_declaration": {
			kind:    KindVariable,
			when:    func(_ *syntax.CSTNode, parent *Node) bool { return isTypeLike(parent.Kind) },
			extract: extractCDeclaration,
		},
	}

	return t
}

// cTopLevel restricts VARIABLE emission to file and namespace scope; local
// declarations inside function bodies are not declaration-producing AST
// nodes (they still feed the per-file symbol table via references).
func cTopLevel(_ *syntax.CSTNode, parent *Node) bool {
	return parent.Kind == KindRoot || parent.Kind == KindNamespace
}

// hasBody matches a type specifier only when it is a definition (carries a
// body); bare references like "struct foo x;" are not declarations.
func hasBody(bodyType string) func(cst *syntax.CSTNode, parent *Node) bool {
	return func(cst *syntax.CSTNode, _ *Node) bool {
		return cst.FindChild(bodyType) != nil
	}
}

func extractCFunction(cst *syntax.CSTNode, n *Node, _ *builder) {
	body := cst.FindChild("compound_statement")
	n.Signature = signatureBefore(cst, body)
	n.ReturnType = cReturnType(cst)

	decl := cFindDeclarator(cst)
	n.Name = cDeclaratorName(decl)
	if strings.Contains(n.Name, "::") {
		// Out-of-line member definition: the declarator already carries the
		// full scope.
		n.QualifiedName = n.Name
		if i := strings.LastIndex(n.Name, "::"); i >= 0 {
			n.Name = n.Name[i+2:]
		}
	}
	n.Parameters = cParameters(decl)
}

// extractCDeclaration handles both variables and function prototypes: a
// declaration whose declarator chain contains a function_declarator declares
// a function, not a variable.
func extractCDeclaration(cst *syntax.CSTNode, n *Node, _ *builder) {
	decl := cFindDeclarator(cst)
	n.Name = cDeclaratorName(decl)
	n.Signature = strings.TrimSuffix(strings.TrimSpace(cst.Content), ";")
	n.ReturnType = cReturnType(cst)

	if fd := cFunctionDeclarator(decl); fd != nil {
		n.Kind = KindFunction
		n.Parameters = cParameters(cst)
	}
}

func extractCTypeSpecifier(cst *syntax.CSTNode, n *Node, _ *builder) {
	if name := cst.FindChild("type_identifier"); name != nil {
		n.Name = name.Content
	}
	body := cst.FindChild("field_declaration_list")
	if body == nil {
		body = cst.FindChild("enumerator_list")
	}
	n.Signature = signatureBefore(cst, body)
}

func extractCTypedef(cst *syntax.CSTNode, n *Node, _ *builder) {
	// The declared alias is the last type_identifier among the direct
	// children (earlier ones belong to the aliased type).
	ids := cst.FindChildren("type_identifier")
	if len(ids) > 0 {
		n.Name = ids[len(ids)-1].Content
	} else if decl := cFindDeclarator(cst); decl != nil {
		n.Name = cDeclaratorName(decl)
	}
	n.Signature = strings.TrimSuffix(strings.TrimSpace(cst.Content), ";")
}

// extractCInclude normalizes an include to a comment-like node and records
// the dependency edge. Angle-bracket includes are system includes.
func extractCInclude(cst *syntax.CSTNode, n *Node, b *builder) {
	if sys := cst.FindChild("system_lib_string"); sys != nil {
		n.IsSystem = true
		n.Name = strings.Trim(sys.Content, "<>")
	} else if lit := cst.FindChild("string_literal"); lit != nil {
		n.Name = strings.Trim(lit.Content, `"`)
	}
	n.Signature = firstLine(cst.Content)
	b.addImport(n.Name, n.IsSystem, n.Range)
}

func extractCMacro(cst *syntax.CSTNode, n *Node, _ *builder) {
	if id := cst.FindChild("identifier"); id != nil {
		n.Name = id.Content
	}
	n.Signature = firstLine(cst.Content)
	if params := cst.FindChild("preproc_params"); params != nil {
		n.Signature = "#define " + n.Name + params.Content
	}
}

// --- C structural helpers ---

// cFindDeclarator returns the outermost declarator child of a declaration
// or function definition.
func cFindDeclarator(cst *syntax.CSTNode) *syntax.CSTNode {
	for _, c := range cst.Children {
		if cDeclaratorWrappers[c.Type] || c.Type == "identifier" || c.Type == "field_identifier" || c.Type == "qualified_identifier" {
			return c
		}
	}
	return nil
}

// cDeclaratorName descends through declarator wrappers to the declared name.
func cDeclaratorName(decl *syntax.CSTNode) string {
	for decl != nil {
		switch decl.Type {
		case "identifier", "field_identifier", "type_identifier", "operator_name", "qualified_identifier", "destructor_name":
			return decl.Content
		}
		next := decl.FindChild(
			"pointer_declarator", "function_declarator", "array_declarator",
			"parenthesized_declarator", "init_declarator", "reference_declarator",
			"qualified_identifier", "identifier", "field_identifier",
			"operator_name", "destructor_name",
		)
		if next == nil {
			return ""
		}
		decl = next
	}
	return ""
}

// cFunctionDeclarator finds a function_declarator in the declarator chain
// without descending into parameter lists.
func cFunctionDeclarator(decl *syntax.CSTNode) *syntax.CSTNode {
	for decl != nil {
		if decl.Type == "function_declarator" {
			return decl
		}
		decl = decl.FindChild(
			"pointer_declarator", "function_declarator",
			"parenthesized_declarator", "init_declarator", "reference_declarator",
		)
	}
	return nil
}

// cReturnType renders the type part of a declaration: the first type
// specifier child plus one star per pointer_declarator wrapper.
func cReturnType(cst *syntax.CSTNode) string {
	var base string
	for _, c := range cst.Children {
		if cTypeSpecifiers[c.Type] {
			base = firstLine(c.Content)
			break
		}
	}
	if base == "" {
		return ""
	}
	stars := 0
	decl := cFindDeclarator(cst)
	for decl != nil && decl.Type == "pointer_declarator" {
		stars++
		decl = decl.FindChild(
			"pointer_declarator", "function_declarator", "array_declarator",
			"parenthesized_declarator", "identifier", "field_identifier",
		)
	}
	return base + strings.Repeat("*", stars)
}

// cParameters extracts the parameter list from a declarator chain.
func cParameters(cst *syntax.CSTNode) []Parameter {
	params := []Parameter{}
	fd := cFunctionDeclarator(cFindDeclarator(cst))
	if fd == nil {
		if cst != nil && cst.Type == "function_declarator" {
			fd = cst
		} else {
			return params
		}
	}
	list := fd.FindChild("parameter_list")
	if list == nil {
		return params
	}
	for _, p := range list.Children {
		switch p.Type {
		case "parameter_declaration", "optional_parameter_declaration":
			params = append(params, cParameter(p))
		case "variadic_parameter":
			params = append(params, Parameter{Name: "...", Type: "", Default: ""})
		}
	}
	return params
}

func cParameter(p *syntax.CSTNode) Parameter {
	out := Parameter{Name: "", Type: "", Default: ""}
	for _, c := range p.Children {
		if cTypeSpecifiers[c.Type] {
			out.Type = firstLine(c.Content)
			break
		}
	}
	decl := cFindDeclarator(p)
	out.Name = cDeclaratorName(decl)
	for decl != nil && (decl.Type == "pointer_declarator" || decl.Type == "reference_declarator") {
		if decl.Type == "pointer_declarator" {
			out.Type += "*"
		} else {
			out.Type += "&"
		}
		decl = decl.FindChild(
			"pointer_declarator", "reference_declarator", "function_declarator",
			"array_declarator", "identifier", "field_identifier",
		)
	}
	// C++ default arguments appear after "=".
	if def := p.FindChild("default_value"); def != nil {
		out.Default = strings.TrimSpace(strings.TrimPrefix(def.Content, "="))
	} else if i := strings.Index(p.Content, "="); i >= 0 {
		out.Default = strings.TrimSpace(p.Content[i+1:])
	}
	return out
}

func cCallee(cst *syntax.CSTNode) (string, syntax.SourceRange, bool) {
	fn := cst.FindChild("identifier", "field_expression", "qualified_identifier", "template_function")
	if fn == nil {
		return "", syntax.SourceRange{}, false
	}
	switch fn.Type {
	case "identifier", "field_expression", "qualified_identifier", "template_function":
		name := firstLine(fn.Content)
		if name == "" {
			return "", syntax.SourceRange{}, false
		}
		return name, cst.Range, true
	}
	return "", syntax.SourceRange{}, false
}
