package log

import (
	"sync"

	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timestampFormat = "02/01/2006 15:04:05"
	// DefaultMaxFileSize for logger rotation file in megabytes
	DefaultMaxFileSize = 100
	// DefaultMaxBackups is the number of rotated log files to keep
	DefaultMaxBackups = 3
	defaultLevels     = "INFO|DEBUG|WARN|ERROR"
)

var (
	globalLogConfig = &Config{}
	// globalLogFile is nil until file logging has been configured
	globalLogFile *lumberjack.Logger

	mu = &sync.RWMutex{}
)

// Config holds configuration settings loaded from the application config
type Config struct {
	Enabled *bool `json:"enabled"`
	SubLoggerConfig
	LoggerFileConfig *FileConfig      `json:"fileSettings,omitempty"`
	SubLoggers       []SubLoggerConfig `json:"subloggers,omitempty"`
}

// SubLoggerConfig holds sub logger configuration settings
type SubLoggerConfig struct {
	Name   string `json:"name,omitempty"`
	Level  string `json:"level"`
	Output string `json:"output"`
}

// FileConfig holds rotating file output settings
type FileConfig struct {
	FileName   string `json:"filename,omitempty"`
	MaxSize    int    `json:"maxsize,omitempty"`
	MaxBackups int    `json:"maxbackups,omitempty"`
	Compress   bool   `json:"compress,omitempty"`
}

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}

// SubLogger defines a named log stream with its own levels and outputs
type SubLogger struct {
	name   string
	levels Levels
	logger *zap.SugaredLogger
}
