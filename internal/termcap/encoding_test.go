package termcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffithind/termout/internal/errors"
)

func TestCanonicalEncoding(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"utf-8", "utf-8"},
		{"UTF-8", "utf-8"},
		{"utf8", "utf-8"},
		{"utf_8", "utf-8"},
		{" UTF8 ", "utf-8"},
		{"latin-1", "windows-1252"},
		{"latin1", "windows-1252"},
		{"ISO-8859-1", "windows-1252"},
		{"ascii", "windows-1252"},
		{"cp1252", "windows-1252"},
		{"cp65001", "utf-8"},
		{"CP65001", "utf-8"},
		{"utf-8-sig", "utf-8-sig"},
		{"UTF_8_SIG", "utf-8-sig"},
		{"cp932", "shift_jis"},
		{"cp936", "gbk"},
		{"cp949", "euc-kr"},
		{"cp950", "big5"},
		{"cp1251", "windows-1251"},
		{"cp866", "ibm866"},
		{"cp437", "ibm437"},
		{"cp850", "ibm850"},
		{"eucJP", "euc-jp"},
		{"eucKR", "euc-kr"},
		{"SJIS", "shift_jis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalEncoding(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalEncoding_Unknown(t *testing.T) {
	for _, name := range []string{"", "  ", "klingon", "cp", "cp99999"} {
		_, err := CanonicalEncoding(name)
		assert.Error(t, err, name)
		assert.True(t, errors.Is(err, errors.CodeEncodingUnknown), name)
	}
}

func TestCanonicalEncoding_OnlyUTF8IsUTF8(t *testing.T) {
	for _, name := range []string{"cp932", "cp936", "cp949", "cp437", "cp850", "eucJP", "utf-8-sig"} {
		got, err := CanonicalEncoding(name)
		require.NoError(t, err, name)
		assert.NotEqual(t, UTF8, got, name)
	}
}

func TestLookupEncoding(t *testing.T) {
	enc, canonical, err := LookupEncoding("cp437")
	require.NoError(t, err)
	require.NotNil(t, enc)
	assert.Equal(t, "ibm437", canonical)

	out, err := enc.NewEncoder().String("\u2500")
	require.NoError(t, err)
	assert.Equal(t, "\xc4", out)
}

func TestPreferredEncoding(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"LANG", map[string]string{"LANG": "en_US.UTF-8"}, "UTF-8"},
		{"LC_ALL wins", map[string]string{"LC_ALL": "de_DE.ISO-8859-1", "LANG": "en_US.UTF-8"}, "ISO-8859-1"},
		{"LC_CTYPE before LANG", map[string]string{"LC_CTYPE": "ja_JP.eucJP", "LANG": "C"}, "eucJP"},
		{"empty LC_ALL skipped", map[string]string{"LC_ALL": "", "LANG": "fr_FR.UTF-8"}, "UTF-8"},
		{"modifier stripped", map[string]string{"LANG": "de_DE.UTF-8@euro"}, "UTF-8"},
		{"no codeset", map[string]string{"LANG": "C"}, ""},
		{"nothing set", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreferredEncoding(env("linux", tt.vars)))
		})
	}
}
