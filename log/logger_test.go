package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Levels{Info: true, Debug: true, Warn: true, Error: true}, splitLevel(defaultLevels))
	assert.Equal(t, Levels{Warn: true, Error: true}, splitLevel("warn| ERROR"))
	assert.Equal(t, Levels{}, splitLevel(""))
}

func TestGetWriters(t *testing.T) {
	t.Parallel()
	_, err := getWriters(nil)
	assert.ErrorIs(t, err, errSubloggerConfigIsNil)

	_, err = getWriters(&SubLoggerConfig{Output: "console|pigeon"})
	assert.ErrorIs(t, err, errUnhandledOutputWriter)

	ws, err := getWriters(&SubLoggerConfig{Output: "stdout|stderr"})
	require.NoError(t, err)
	assert.NotNil(t, ws)
}

func TestGenDefaultSettings(t *testing.T) {
	t.Parallel()
	c := GenDefaultSettings()
	require.NotNil(t, c.Enabled)
	assert.True(t, *c.Enabled)
	assert.Equal(t, defaultLevels, c.Level)
	require.NotNil(t, c.LoggerFileConfig)
	assert.Equal(t, DefaultMaxFileSize, c.LoggerFileConfig.MaxSize)
}

// The tests below reconfigure package state and must not run in parallel

func TestSetupGlobalLoggerFile(t *testing.T) {
	assert.ErrorIs(t, SetupGlobalLogger(nil), errConfigIsNil)

	logFile := filepath.Join(t.TempDir(), "execsim.log")
	c := GenDefaultSettings()
	c.Output = "file"
	c.LoggerFileConfig.FileName = logFile
	c.SubLoggers = []SubLoggerConfig{{Name: "funding", Level: "ERROR", Output: "file"}}
	require.NoError(t, SetupGlobalLogger(&c))

	Infof(Exchange, "filled %s", "BTC/USD")
	Infow(Exchange, "snapshot saved", "store", "leveldb")
	Infof(Funding, "suppressed %d", 1)
	Errorf(Funding, "rejected %d", 2)
	require.NoError(t, CloseLogger())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "filled BTC/USD")
	assert.Contains(t, out, "EXCHANGE")
	assert.Contains(t, out, "leveldb")
	assert.Contains(t, out, "rejected 2")
	assert.NotContains(t, out, "suppressed")

	c = GenDefaultSettings()
	c.LoggerFileConfig = nil
	c.Output = "file"
	assert.ErrorIs(t, SetupGlobalLogger(&c), errFileLoggingNotConfigured)

	c = GenDefaultSettings()
	c.LoggerFileConfig = nil
	c.SubLoggers = []SubLoggerConfig{{Name: "nope", Level: "INFO", Output: "console"}}
	assert.ErrorIs(t, SetupGlobalLogger(&c), errSubLoggerNotFound)

	c = GenDefaultSettings()
	c.LoggerFileConfig = nil
	require.NoError(t, SetupGlobalLogger(&c))
}

func TestCustomLogHook(t *testing.T) {
	var m sync.Mutex
	var got []string
	SetCustomLogHook(func(level, name, msg string) bool {
		m.Lock()
		got = append(got, level+" "+name+" "+msg)
		m.Unlock()
		return true
	})
	defer SetCustomLogHook(nil)

	Warnf(Exchange, "maker fee %d above taker fee %d", 30, 20)
	Debugf(Persistence, "saved")
	Errorln(Global, "boom")

	m.Lock()
	defer m.Unlock()
	assert.Equal(t, []string{
		"WARN EXCHANGE maker fee 30 above taker fee 20",
		"DEBUG PERSISTENCE saved",
		"ERROR LOG boom",
	}, got)
}

func TestDisabledLogger(t *testing.T) {
	called := false
	SetCustomLogHook(func(string, string, string) bool {
		called = true
		return true
	})
	defer SetCustomLogHook(nil)

	disabled := false
	require.NoError(t, SetupGlobalLogger(&Config{Enabled: &disabled}))
	Infof(Exchange, "hidden")
	assert.False(t, called)

	c := GenDefaultSettings()
	c.LoggerFileConfig = nil
	require.NoError(t, SetupGlobalLogger(&c))
	Infof(Exchange, "shown")
	assert.True(t, called)

	var nilLogger *SubLogger
	Infof(nilLogger, "no panic")
	assert.Empty(t, nilLogger.Name())
}
