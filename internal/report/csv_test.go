package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bench/measure/sweep"
)

func sampleRows() []sweep.Row {
	return []sweep.Row{
		{FreqHz: 100, Vrms: 0.707, Vpp: 2, THD: 0.021},
		{FreqHz: 1000, Vrms: math.NaN(), Vpp: math.NaN(), THD: math.NaN()},
		{FreqHz: 10000, Vrms: 0.5, Vpp: 1.41, THD: 0.003},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "freq_hz,vrms,pkpk,thd_ratio", lines[0])
	assert.Equal(t, "100,0.707,2,0.021", lines[1])
	assert.Equal(t, "1000,NaN,NaN,NaN", lines[2])
	assert.Equal(t, "10000,0.5,1.41,0.003", lines[3])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "freq_hz,vrms,pkpk,thd_ratio\n", buf.String())
}

func TestFormatTHDRows(t *testing.T) {
	lines := FormatTHDRows(sampleRows())
	require.Len(t, lines, 3)

	assert.Equal(t, "  100.00 Hz -> THD  2.100%", lines[0])
	assert.Equal(t, " 1000.00 Hz -> THD NaN", lines[1])
	assert.Equal(t, "10000.00 Hz -> THD  0.300%", lines[2])
}
