// Public domain.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stellarRun = `object        ndet  RA            Dec            sRA"   sDec"  deltamjd stellar  g-r
ZTF20aaaaaaa     2  10ʰ01ᵐ00.00ˢ  +2°30′00.0″    0.00   0.00    1.000 yes      0.400
ZTF20aaaaaab     3  10ʰ01ᵐ00.00ˢ  +2°30′00.0″    0.00   0.00    1.000 yes      0.600
ZTF20aaaaaac     1  10ʰ01ᵐ00.00ˢ  +2°30′00.0″      -      -    0.000 no           -
`

const otherRun = `object        ndet  RA            Dec            sRA"   sDec"  deltamjd stellar  g-r
ZTF20bbbbbba     2  10ʰ01ᵐ00.00ˢ  +2°30′00.0″    0.00   0.00    1.000 no      -0.100
ZTF20bbbbbbb     2  10ʰ01ᵐ00.00ˢ  +2°30′00.0″    0.00   0.00    1.000 no       0.200
`

func TestCount(t *testing.T) {
	c, err := count(strings.NewReader(stellarRun), defaultColumn, .5)
	require.NoError(t, err)
	assert.Equal(t, counts{ge: 2, lt: 1, ignored: 1}, c)

	c, err = count(strings.NewReader(stellarRun), 8, .5)
	require.NoError(t, err)
	assert.Equal(t, counts{ge: 1, lt: 1, ignored: 2}, c)
}

func TestMCC(t *testing.T) {
	assert.Equal(t, 1., mcc(5, 0, 0, 5))
	assert.Equal(t, -1., mcc(0, 5, 5, 0))
	assert.Equal(t, 0., mcc(5, 5, 0, 0))
	assert.InDelta(t, 2./3, mcc(2, 1, 0, 2), 1e-12)
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "stellar.txt")
	out := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(in, []byte(stellarRun), 0o644))
	require.NoError(t, os.WriteFile(out, []byte(otherRun), 0o644))

	cmd := command()
	var b bytes.Buffer
	cmd.SetOut(&b)
	cmd.SetArgs([]string{in, out})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, b.String(), "Total objects:      5")
	assert.Contains(t, b.String(), "Lines ignored:      2")
	assert.Contains(t, b.String(), "Threshold:          0.5")
	assert.Contains(t, b.String(), "Matthews correlation coefficient: 0.67")

	cmd = command()
	cmd.SetOut(&b)
	cmd.SetArgs([]string{in})
	assert.Error(t, cmd.Execute())

	cmd = command()
	cmd.SetOut(&b)
	cmd.SetArgs([]string{in, out, "x"})
	assert.Error(t, cmd.Execute())
}
