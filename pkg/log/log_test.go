package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/randforest/pkg/errors"
)

func TestTestLogger_Levels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("hidden debug")
	testLogger.Info("build started", OperationKey, OperationFit, SamplesKey, 1000)
	testLogger.Warn("subset raised")
	testLogger.Error("build failed", fmt.Errorf("boom"), ErrorCodeKey, ErrorEmptyData)

	assert.NotEmpty(t, buffer.String())
	assert.False(t, testLogger.ContainsMessage("hidden debug"))
	assert.True(t, testLogger.ContainsMessage("build started"))
	assert.True(t, testLogger.ContainsField(SamplesKey, 1000.0))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))
	assert.True(t, testLogger.ContainsField(ErrorCodeKey, ErrorEmptyData))

	ctx := context.Background()
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Clear()
	assert.Empty(t, buffer.String())
}

func TestTestLogger_With(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	forestLogger := testLogger.With(ModelNameKey, "Forest", TreesKey, 3)
	forestLogger.Debug("tree trained", TreeIndexKey, 2)

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Forest", entries[0][ModelNameKey])
	assert.Equal(t, 3.0, entries[0][TreesKey])
	assert.Equal(t, 2.0, entries[0][TreeIndexKey])
	assert.Equal(t, "DEBUG", entries[0]["level"])
}

func TestTestLogger_Concurrent(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				testLogger.Info("predicted", "goroutine", id, PredsKey, j)
			}
		}(g)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.With(ModelNameKey, "Forest").Info("build finished",
		TreesKey, 4,
		DurationMsKey, int64(12),
	)
	logger.Error("build failed",
		errors.NewValueErrorWithCause("Forest.Build", "training set is empty", errors.ErrEmptyData),
	)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "info", info["level"])
	assert.Equal(t, "build finished", info["message"])
	assert.Equal(t, "Forest", info[ModelNameKey])
	assert.Equal(t, 4.0, info[TreesKey])

	var failed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))
	assert.Equal(t, "error", failed["level"])
	assert.Contains(t, failed[ErrAttrKey], "training set is empty")

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, LevelWarn))
	assert.False(t, logger.Enabled(ctx, LevelDebug))
}

func TestZerologLogger_StructuredErrorDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	logger.Warn("predict rejected", "cause", errors.NewDimensionError("Forest.Predict", 4, 3, 1))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	detail, ok := entry["cause_detail"].(map[string]interface{})
	require.True(t, ok, "expected structured detail, got %v", entry)
	assert.Equal(t, "DimensionError", detail["type"])
	assert.Equal(t, 4.0, detail["expected"])
}

func TestSetLogger_RoutesWarnings(t *testing.T) {
	previous := GetLogger()
	defer SetLogger(previous)

	var buf bytes.Buffer
	SetLogger(NewZerologLogger(&buf, LevelDebug))
	errors.Warn(errors.NewSamplingWarning("Forest.Build", 0, 1, "fewer samples than trees"))

	assert.Contains(t, buf.String(), `"type":"SamplingWarning"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestSetupLogger_AddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, LevelDebug)

	logger.Error("build failed", errors.New("no trees"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ERROR", entry["severity"])
	assert.Equal(t, "build failed", entry["message"])
	assert.NotEmpty(t, entry[StacktraceAttrKey])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "UNKNOWN", got.String())
		})
	}
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	var provider LoggerProvider = NewZerologProvider(&buf, LevelWarn)

	provider.GetLogger().Info("hidden")
	provider.GetLoggerWithName("train-test").Warn("subset raised")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"ml.component":"train-test"`)

	provider.SetLevel(LevelDebug)
	provider.GetLogger().Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")

	buf.Reset()
	NewConsoleProvider(&buf, LevelInfo).GetLogger().Info("console line")
	assert.Contains(t, buf.String(), "console line")
	assert.NotContains(t, buf.String(), `"message"`)
}

func BenchmarkZerologLogger(b *testing.B) {
	logger := NewZerologLogger(&bytes.Buffer{}, LevelInfo).With(ModelNameKey, "Forest")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("predicted", PredsKey, i)
	}
}
