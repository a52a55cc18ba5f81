package log

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	Global      *SubLogger
	ConfigMgr   *SubLogger
	Exchange    *SubLogger
	Funding     *SubLogger
	Statistics  *SubLogger
	Persistence *SubLogger
	DatabaseMgr *SubLogger
	Replay      *SubLogger
)
