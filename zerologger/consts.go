package zerologger

const (
	emptyString     = ""
	defaultExecName = "app"
	logFileExt      = ".log"
	envPrefix       = "LOGBASE"

	defaultShutdownTimeoutMS = 100
)

const (
	errMsgNilService     = "Logger service is nil."
	errMsgConfigNotSet   = "Logging config is not set."
	errMsgNilConfig      = "Logging config is nil."
	errMsgConfigInvalid  = "Logging configuration is invalid."
	errMsgWorkingDir     = "Working dir has not been set/injected."
	errMsgLogDir         = "Failed to create logs directory."
	errMsgNotInitialized = "Logger service is not initialized."
	errMsgCloseFile      = "Failed to close log file."
	errMsgConfigRead     = "Failed to read logging config file."
	errMsgConfigDecode   = "Failed to decode logging config."
	errMsgValidator      = "Failed to register logging config validations."
)
