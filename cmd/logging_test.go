package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestConfigureLogging_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, configureLogging(&buf, "json", "debug"))
	t.Cleanup(func() { _ = configureLogging(&bytes.Buffer{}, "text", "info") })

	logger.WithField("dataset", "/X/Y/Z").Debug("querying DAS")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "querying DAS", entry["msg"])
	require.Equal(t, "/X/Y/Z", entry["dataset"])
	require.Equal(t, "debug", entry["level"])
}

func TestConfigureLogging_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, configureLogging(&buf, "text", "warn"))
	t.Cleanup(func() { _ = configureLogging(&bytes.Buffer{}, "text", "info") })

	logger.Info("hidden")
	require.Empty(t, buf.String())
	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
	require.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestConfigureLogging_Invalid(t *testing.T) {
	require.ErrorContains(t, configureLogging(&bytes.Buffer{}, "xml", "info"), "invalid --log-format")
	require.ErrorContains(t, configureLogging(&bytes.Buffer{}, "text", "loud"), "invalid --log-level")
}
