package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	oldTerm, oldRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetWithDefault(t *testing.T) {
	var out bytes.Buffer
	in := rdr("\nRent\n")

	got, err := GetWithDefault(in, "Name", "Food", &out)
	require.NoError(t, err)
	assert.Equal(t, "Food", got)

	got, err = GetWithDefault(in, "Name", "Food", &out)
	require.NoError(t, err)
	assert.Equal(t, "Rent", got)
	assert.Contains(t, out.String(), "Name [Food]")
}

func TestGetPassword_NotATerminalReadsLine(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))
	var out bytes.Buffer

	got, err := GetPassword(rdr("secret1\n"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)
	var out bytes.Buffer

	got, err := GetPassword(rdr(""), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))
	var out bytes.Buffer
	_, err := GetPassword(rdr(""), "Password", &out)
	require.Error(t, err)
}

func TestParseHelpers(t *testing.T) {
	id, err := parseID("#12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}

	ids, err := parseIDs([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	_, err = parseIDs([]string{"1", "x"})
	require.Error(t, err)

	id, err = parseOptionalID("")
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.Equal(t, "", optionalID(0))
	assert.Equal(t, "7", optionalID(7))

	v, err := parseAmount("12,50")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)
	_, err = parseAmount("twelve")
	require.Error(t, err)
	assert.Equal(t, "12.50", formatAmount(12.5))
}
