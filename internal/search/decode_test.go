package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecodePolicy(t *testing.T) {
	p, err := ParseDecodePolicy("replace")
	require.NoError(t, err)
	assert.Equal(t, DecodeReplace, p)

	p, err = ParseDecodePolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, DecodeSkip, p)

	_, err = ParseDecodePolicy("latin1")
	assert.Error(t, err)
}

func TestDecodeLine(t *testing.T) {
	valid := []byte("zażółć gęślą jaźń")
	assert.Equal(t, "zażółć gęślą jaźń", decodeLine(valid, DecodeReplace))
	assert.Equal(t, "zażółć gęślą jaźń", decodeLine(valid, DecodeSkip))

	// 0xFF is never valid UTF-8.
	invalid := []byte("ab\xffcd")
	assert.Equal(t, "ab�cd", decodeLine(invalid, DecodeReplace))
	assert.Equal(t, "abcd", decodeLine(invalid, DecodeSkip))

	// A truncated multi-byte sequence is handled byte by byte.
	truncated := []byte("x\xc3")
	assert.Equal(t, "x�", decodeLine(truncated, DecodeReplace))
	assert.Equal(t, "x", decodeLine(truncated, DecodeSkip))
}
