package runtimecfg

const (
	ConfigDirName  = ".golaunchd"
	ConfigFileName = "config.yaml"
	LogDirName     = "logs"
	LogFileName    = "golaunchd.log"
)

const (
	OutputDefaultFormat = "xml"
	LabelDefaultPrefix  = "local.golaunchd"
	LaunchAgentsDirName = "Library/LaunchAgents"
)

const (
	CronNextDefaultCount = 5
	CronNextMaxCount     = 100
)
