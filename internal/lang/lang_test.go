package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_ByExtension(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"src/main.c", LangC},
		{"src/widget.cc", LangCPP},
		{"src/widget.cpp", LangCPP},
		{"src/widget.hpp", LangCPP},
		{"pkg/module.py", LangPython},
		{"web/app.js", LangJavaScript},
		{"web/app.jsx", LangJavaScript},
		{"web/app.ts", LangTypeScript},
		{"web/app.tsx", LangTypeScript},
		{"README.md", LangUnknown},
		{"Makefile", LangUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.path, nil))
		})
	}
}

func TestDetect_HeaderDisambiguation(t *testing.T) {
	t.Run("plain C header", func(t *testing.T) {
		src := []byte("#ifndef UTIL_H\n#define UTIL_H\nint add(int a, int b);\n#endif\n")
		assert.Equal(t, LangC, Detect("util.h", src))
	})

	t.Run("class makes it C++", func(t *testing.T) {
		src := []byte("#pragma once\nclass Widget {\npublic:\n  void draw();\n};\n")
		assert.Equal(t, LangCPP, Detect("widget.h", src))
	})

	t.Run("namespace makes it C++", func(t *testing.T) {
		src := []byte("namespace geo {\nstruct Point { int x; int y; };\n}\n")
		assert.Equal(t, LangCPP, Detect("point.h", src))
	})

	t.Run("template makes it C++", func(t *testing.T) {
		src := []byte("template <typename T>\nT max(T a, T b);\n")
		assert.Equal(t, LangCPP, Detect("max.h", src))
	})
}

func TestDetect_ByContent(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Language
	}{
		{"python def", "def main():\n    pass\n", LangPython},
		{"python import", "import os\nimport sys\n", LangPython},
		{"js const arrow", "const add = (a, b) => a + b;\nmodule.exports = add;\n", LangJavaScript},
		{"ts interface", "interface User {\n  name: string;\n}\n", LangTypeScript},
		{"ts annotation", "function greet(name: string): string {\n  return name;\n}\n", LangTypeScript},
		{"c include", "#include <stdio.h>\nint main(void) { return 0; }\n", LangC},
		{"prose", "hello world, nothing to see here", LangUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect("snippet", []byte(tt.src)))
		})
	}
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, "::", LangCPP.Separator())
	assert.Equal(t, ".", LangPython.Separator())
	assert.Equal(t, ".", LangC.Separator())
	assert.Equal(t, ".", LangTypeScript.Separator())
}
