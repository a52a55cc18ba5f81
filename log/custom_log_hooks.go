package log

// CustomLogHook is a function type for external log handling. It should return
// true if the zap backed output should be bypassed for the event.
type CustomLogHook func(level, subLoggerName, msg string) (bypassLibraryLogSystem bool)

var customLogHook CustomLogHook

// SetCustomLogHook sets a hook that receives every enabled log event before it
// reaches the configured outputs. Passing nil removes the hook.
func SetCustomLogHook(h CustomLogHook) {
	mu.Lock()
	customLogHook = h
	mu.Unlock()
}
