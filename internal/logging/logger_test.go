package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"repopush/internal/logging"
)

func TestLoggerFactoryCreateLogger(t *testing.T) {
	testCases := []struct {
		name        string
		level       logging.LogLevel
		format      logging.LogFormat
		expectError bool
		structured  bool
	}{
		{name: "debug_structured", level: logging.LogLevelDebug, format: logging.LogFormatStructured, structured: true},
		{name: "info_console", level: logging.LogLevelInfo, format: logging.LogFormatConsole},
		{name: "upper_case_level", level: "WARN", format: logging.LogFormatConsole},
		{name: "unsupported_level", level: "verbose", format: logging.LogFormatConsole, expectError: true},
		{name: "unsupported_format", level: logging.LogLevelInfo, format: "xml", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logs", "repopush.log")

			logger, err := logging.NewLoggerFactory().CreateLogger(tc.level, tc.format, path)
			if tc.expectError {
				require.Error(t, err)
				require.Nil(t, logger)
				return
			}
			require.NoError(t, err)

			logger.Error("logger_factory_test_message")
			_ = logger.Sync()

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			line := strings.TrimSpace(string(data))
			require.Contains(t, line, "logger_factory_test_message")

			var decoded map[string]any
			decodeErr := json.Unmarshal([]byte(line), &decoded)
			if tc.structured {
				require.NoError(t, decodeErr)
				require.Equal(t, "error", decoded["level"])
			} else {
				require.Error(t, decodeErr)
			}
		})
	}
}

func TestLoggerFactoryHonoursLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repopush.log")
	logger, err := logging.NewLoggerFactory().CreateLogger(logging.LogLevelWarn, logging.LogFormatStructured, path)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}
