package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevWriter := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevWriter)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestComponentPrefix(t *testing.T) {
	buf := capture(t)
	NewWithLevel("AnalysisService", LevelInfo).Infof("run %s completed", "abc")
	assert.Equal(t, "[AnalysisService] run abc completed\n", buf.String())
}

func TestLevelTags(t *testing.T) {
	buf := capture(t)
	lg := NewWithLevel("api", LevelDebug)
	lg.Errorf("boom")
	lg.Warnf("careful")
	lg.Debugf("details")
	out := buf.String()
	assert.Contains(t, out, "[api] ERROR: boom")
	assert.Contains(t, out, "[api] WARN: careful")
	assert.Contains(t, out, "[api] DEBUG: details")
}

func TestLevelGating(t *testing.T) {
	buf := capture(t)
	lg := NewWithLevel("api", LevelWarn)
	lg.Infof("hidden")
	lg.Debugf("hidden too")
	lg.Errorf("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERROR: shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("VERBOSE"))
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	buf := capture(t)
	New("api").Debugf("visible")
	assert.Contains(t, buf.String(), "DEBUG: visible")
}
