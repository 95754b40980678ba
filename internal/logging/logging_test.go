package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		name    string
		debug   bool
		verbose bool
		want    zerolog.Level
	}{
		{"default", false, false, zerolog.WarnLevel},
		{"verbose", false, true, zerolog.InfoLevel},
		{"debug", true, false, zerolog.DebugLevel},
		{"debug wins over verbose", true, true, zerolog.DebugLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := New(&bytes.Buffer{}, tc.debug, tc.verbose)
			assert.Equal(t, tc.want, log.GetLevel())
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, false, false)
	log.Info().Msg("quiet")
	assert.Empty(t, buf.String())

	log.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}
