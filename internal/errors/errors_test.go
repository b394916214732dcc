package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedLanguageMessage(t *testing.T) {
	err := &UnsupportedLanguage{Path: "main.kt"}
	assert.Contains(t, err.Error(), "main.kt")
}

func TestParseErrorUnwraps(t *testing.T) {
	underlying := errors.New("boom")
	err := &ParseError{Path: "a.rs", Detail: "eof", Err: underlying}
	assert.ErrorIs(t, err, underlying)
}

func TestBadCacheWithoutUnderlyingError(t *testing.T) {
	err := &BadCache{Detail: "version mismatch"}
	assert.Equal(t, "bad cache: version mismatch", err.Error())
}

func TestIoUnwraps(t *testing.T) {
	underlying := errors.New("disk full")
	err := &Io{Path: "graph.bin", Detail: "write", Err: underlying}
	assert.ErrorIs(t, err, underlying)
}
