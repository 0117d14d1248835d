package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("loud"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "debug", JSON: true})

	Component(log, "inhibit").WithField("cookie", 7).Info("idle inhibited")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "inhibit", rec["component"])
	assert.Equal(t, "idle inhibited", rec["msg"])
	assert.InDelta(t, 7.0, rec["cookie"], 0)
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vdplayer.log")

	log, closer, err := Setup(Options{Level: "info", File: path})
	require.NoError(t, err)
	log.Debug("hidden")
	log.Warn("visible")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.NotContains(t, string(data), "hidden")
}
