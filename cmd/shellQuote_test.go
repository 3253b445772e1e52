package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShellQuote_Dedicated(t *testing.T) {
	require.Equal(t, "simple", shellQuote("simple"))
	require.Equal(t, "''", shellQuote(""))
	require.Equal(t, "'two words'", shellQuote("two words"))
	require.Equal(t, `'a'\''b'`, shellQuote("a'b"))
	require.Equal(t, "/path/ok", shellQuote("/path/ok"))
	require.Equal(t, "abc+123", shellQuote("abc+123"))
	require.Equal(t, "root://cms-xrd-global.cern.ch/", shellQuote("root://cms-xrd-global.cern.ch/"))
	require.Equal(t, "'$HOME'", shellQuote("$HOME"))
}

func TestShellJoin_QuotesEachWord(t *testing.T) {
	require.Equal(t, "echo 'hello world' ok", shellJoin([]string{"echo", "hello world", "ok"}))
	require.Equal(t, "", shellJoin(nil))
}
