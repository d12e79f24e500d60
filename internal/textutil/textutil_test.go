package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestShort(t *testing.T) {
	require.Equal(t, "hello", Short("hello"))

	exact := strings.Repeat("a", MaxLogRunes)
	require.Equal(t, exact, Short(exact))

	long := strings.Repeat("a", MaxLogRunes+20)
	require.Equal(t, strings.Repeat("a", MaxLogRunes)+"...", Short(long))
}

func TestShort_MultiByteStaysValid(t *testing.T) {
	// 179 ASCII bytes put the byte-180 boundary inside the first "é".
	s := strings.Repeat("a", MaxLogRunes-1) + strings.Repeat("é", 10)

	out := Short(s)
	require.True(t, utf8.ValidString(out), "%q", out)
	require.Equal(t, strings.Repeat("a", MaxLogRunes-1)+"é...", out)

	cyr := strings.Repeat("обновить поставщика ", 20)
	out = Short(cyr)
	require.True(t, utf8.ValidString(out))
	require.Equal(t, MaxLogRunes+3, utf8.RuneCountInString(out))
}
