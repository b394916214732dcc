package langregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/anchor/internal/types"
)

func TestDetectKnownExtensions(t *testing.T) {
	cases := map[string]types.Language{
		"lib.rs":     types.LangRust,
		"script.py":  types.LangPython,
		"app.pyw":    types.LangPython,
		"index.js":   types.LangJavaScript,
		"index.mjs":  types.LangJavaScript,
		"mod.ts":     types.LangTypeScript,
		"comp.tsx":   types.LangTSX,
		"widget.jsx": types.LangTSX,
		"main.go":    types.LangGo,
		"App.java":   types.LangJava,
		"Prog.cs":    types.LangCSharp,
		"thing.rb":   types.LangRuby,
		"thing.cpp":  types.LangCPP,
		"thing.hpp":  types.LangCPP,
		"View.swift": types.LangSwift,
	}
	for path, want := range cases {
		got, ok := Detect(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}
}

func TestDetectUnknownExtension(t *testing.T) {
	_, ok := Detect("README.md")
	assert.False(t, ok)
}

func TestGrammarResolvesForEveryLanguage(t *testing.T) {
	for _, lang := range []types.Language{
		types.LangRust, types.LangPython, types.LangJavaScript,
		types.LangTypeScript, types.LangTSX, types.LangGo, types.LangJava,
		types.LangCSharp, types.LangRuby, types.LangCPP, types.LangSwift,
	} {
		g, ok := Grammar(lang)
		assert.True(t, ok, lang)
		assert.NotNil(t, g, lang)
	}
}

func TestEcosystemGroupsJSFamily(t *testing.T) {
	assert.Equal(t, types.LangJavaScript.Ecosystem(), types.LangTypeScript.Ecosystem())
	assert.Equal(t, types.LangJavaScript.Ecosystem(), types.LangTSX.Ecosystem())
	assert.NotEqual(t, types.LangGo.Ecosystem(), types.LangRust.Ecosystem())
}
