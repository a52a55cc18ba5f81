package log

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	errSubloggerConfigIsNil     = errors.New("sublogger config is nil")
	errUnhandledOutputWriter    = errors.New("unhandled output writer")
	errFileLoggingNotConfigured = errors.New("file output requested without file settings")
	errSubLoggerNotFound        = errors.New("sub logger not found")
	errConfigIsNil              = errors.New("log config is nil")
)

func getWriters(s *SubLoggerConfig) (zapcore.WriteSyncer, error) {
	if s == nil {
		return nil, errSubloggerConfigIsNil
	}
	outputWriters := strings.Split(s.Output, "|")
	syncers := make([]zapcore.WriteSyncer, 0, len(outputWriters))
	for x := range outputWriters {
		switch strings.ToLower(strings.TrimSpace(outputWriters[x])) {
		case "stdout", "console":
			syncers = append(syncers, zapcore.Lock(os.Stdout))
		case "stderr":
			syncers = append(syncers, zapcore.Lock(os.Stderr))
		case "file":
			if globalLogFile == nil {
				return nil, errFileLoggingNotConfigured
			}
			syncers = append(syncers, zapcore.AddSync(globalLogFile))
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
	}
	return zapcore.NewMultiWriteSyncer(syncers...), nil
}

func newEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timestampFormat)
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.ConsoleSeparator = " | "
	return zapcore.NewConsoleEncoder(encoderCfg)
}

func newSugar(name string, ws zapcore.WriteSyncer) *zap.SugaredLogger {
	// levels are filtered per sub logger before reaching zap
	core := zapcore.NewCore(newEncoder(), ws, zapcore.DebugLevel)
	return zap.New(core).Named(name).Sugar()
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	enabled := true
	return Config{
		Enabled: &enabled,
		SubLoggerConfig: SubLoggerConfig{
			Level:  defaultLevels,
			Output: "console",
		},
		LoggerFileConfig: &FileConfig{
			FileName:   "execsim.log",
			MaxSize:    DefaultMaxFileSize,
			MaxBackups: DefaultMaxBackups,
		},
	}
}

// SetupGlobalLogger applies the config to every registered sub logger and
// then applies any per sub logger overrides
func SetupGlobalLogger(c *Config) error {
	if c == nil {
		return errConfigIsNil
	}
	mu.Lock()
	defer mu.Unlock()

	if c.Enabled != nil && !*c.Enabled {
		for _, sl := range subLoggers {
			sl.levels = Levels{}
			sl.logger = zap.NewNop().Sugar()
		}
		globalLogConfig = c
		return nil
	}

	if c.LoggerFileConfig != nil && c.LoggerFileConfig.FileName != "" {
		if globalLogFile != nil {
			_ = globalLogFile.Close()
		}
		maxSize := c.LoggerFileConfig.MaxSize
		if maxSize <= 0 {
			maxSize = DefaultMaxFileSize
		}
		globalLogFile = &lumberjack.Logger{
			Filename:   c.LoggerFileConfig.FileName,
			MaxSize:    maxSize,
			MaxBackups: c.LoggerFileConfig.MaxBackups,
			Compress:   c.LoggerFileConfig.Compress,
		}
	}

	ws, err := getWriters(&c.SubLoggerConfig)
	if err != nil {
		return err
	}
	for _, sl := range subLoggers {
		sl.levels = splitLevel(c.Level)
		sl.logger = newSugar(sl.name, ws)
	}
	for x := range c.SubLoggers {
		if err := configureSubLogger(&c.SubLoggers[x]); err != nil {
			return err
		}
	}
	globalLogConfig = c
	return nil
}

func configureSubLogger(s *SubLoggerConfig) error {
	sl, found := subLoggers[strings.ToUpper(s.Name)]
	if !found {
		return fmt.Errorf("%w: %v", errSubLoggerNotFound, s.Name)
	}
	ws, err := getWriters(s)
	if err != nil {
		return err
	}
	sl.levels = splitLevel(s.Level)
	sl.logger = newSugar(sl.name, ws)
	return nil
}

// CloseLogger flushes every sub logger and closes the log file if one is open
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	for _, sl := range subLoggers {
		// syncing a terminal returns EINVAL on some platforms
		_ = sl.logger.Sync()
	}
	if globalLogFile == nil {
		return nil
	}
	err := globalLogFile.Close()
	globalLogFile = nil
	return err
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch level := strings.ToUpper(strings.TrimSpace(enabledLevels[x])); level {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func registerNewSubLogger(subLogger string) *SubLogger {
	name := strings.ToUpper(subLogger)
	temp := &SubLogger{
		name:   name,
		levels: splitLevel(defaultLevels),
		logger: newSugar(name, zapcore.Lock(os.Stdout)),
	}
	subLoggers[name] = temp
	return temp
}

// register all loggers at package init()
func init() {
	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	Exchange = registerNewSubLogger("EXCHANGE")
	Funding = registerNewSubLogger("FUNDING")
	Statistics = registerNewSubLogger("STATISTICS")
	Persistence = registerNewSubLogger("PERSISTENCE")
	DatabaseMgr = registerNewSubLogger("DATABASE")
	Replay = registerNewSubLogger("REPLAY")
}
