package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anchor/internal/types"
)

func TestExtractRustAddMulCallsAdd(t *testing.T) {
	src := []byte("fn add(a:i32,b:i32)->i32{a+b}\nfn mul(a:i32,b:i32)->i32{add(a,b)}")

	ex := New()
	out, err := ex.Extract(context.Background(), "src/lib.rs", types.LangRust, src)
	require.NoError(t, err)

	require.Len(t, out.Symbols, 2)
	assert.Equal(t, "add", out.Symbols[0].Name)
	assert.Equal(t, types.NodeFunction, out.Symbols[0].Kind)
	assert.Equal(t, "mul", out.Symbols[1].Name)

	require.Len(t, out.Calls, 1)
	assert.Equal(t, "add", out.Calls[0].Callee)
	assert.Equal(t, "mul", out.Calls[0].Caller)
	assert.Equal(t, 2, out.Calls[0].Line)
}

func TestExtractGoMethodAttachesToReceiverType(t *testing.T) {
	src := []byte(`package demo

type Widget struct{}

func (w *Widget) Render() string {
	return "widget"
}
`)
	ex := New()
	out, err := ex.Extract(context.Background(), "widget.go", types.LangGo, src)
	require.NoError(t, err)

	var method *types.ExtractedSymbol
	for i := range out.Symbols {
		if out.Symbols[i].Name == "Render" {
			method = &out.Symbols[i]
		}
	}
	require.NotNil(t, method)
	assert.Equal(t, types.NodeMethod, method.Kind)
	assert.Equal(t, "Widget", method.Parent)
}

func TestExtractPythonClassMethodNestingAndImport(t *testing.T) {
	src := []byte(`import os

class Greeter:
    def greet(self):
        print("hi")
`)
	ex := New()
	out, err := ex.Extract(context.Background(), "greeter.py", types.LangPython, src)
	require.NoError(t, err)

	require.Len(t, out.Imports, 1)
	assert.Equal(t, "os", out.Imports[0].Path)

	var greet *types.ExtractedSymbol
	for i := range out.Symbols {
		if out.Symbols[i].Name == "greet" {
			greet = &out.Symbols[i]
		}
	}
	require.NotNil(t, greet)
	assert.Equal(t, types.NodeMethod, greet.Kind)
	assert.Equal(t, "Greeter", greet.Parent)
}

func TestExtractUnsupportedLanguageErrors(t *testing.T) {
	ex := New()
	_, err := ex.Extract(context.Background(), "f.txt", types.Language("plaintext"), []byte("hi"))
	assert.Error(t, err)
}

func TestExtractEmptySourceReturnsEmptyLists(t *testing.T) {
	ex := New()
	out, err := ex.Extract(context.Background(), "empty.go", types.LangGo, []byte("package empty\n"))
	require.NoError(t, err)
	assert.Empty(t, out.Symbols)
	assert.Empty(t, out.Imports)
	assert.Empty(t, out.Calls)
}
