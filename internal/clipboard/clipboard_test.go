package clipboard_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/alkime/blogsmith/internal/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Write(t *testing.T) {
	var buf bytes.Buffer
	cb := clipboard.NewTerminal(&buf)

	require.NoError(t, cb.Write("hello blog"))

	out := buf.String()
	assert.Contains(t, out, "\x1b]52;")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("hello blog")))
}

func TestTerminal_NoOutput(t *testing.T) {
	require.ErrorIs(t, clipboard.NewTerminal(nil).Write("x"), clipboard.ErrNoOutput)
}

func TestSequence(t *testing.T) {
	seq := clipboard.Sequence("hello blog")

	assert.Contains(t, seq, "\x1b]52;")
	assert.Contains(t, seq, base64.StdEncoding.EncodeToString([]byte("hello blog")))
}

func TestPending(t *testing.T) {
	var p clipboard.Pending

	assert.Nil(t, p.Flush())

	require.NoError(t, p.Write("first"))
	require.NoError(t, p.Write("second"))

	require.NotNil(t, p.Flush())
	assert.Nil(t, p.Flush(), "flush drains the queue")
}

func TestMemory(t *testing.T) {
	var m clipboard.Memory

	text, n := m.Last()
	assert.Empty(t, text)
	assert.Zero(t, n)

	require.NoError(t, m.Write("one"))
	require.NoError(t, m.Write("two"))

	text, n = m.Last()
	assert.Equal(t, "two", text)
	assert.Equal(t, 2, n)
}
