package config

const (
	// Config errors
	ErrParseConfigFmt = "failed to parse config file: %v"

	// Session store errors
	ErrInitStoreFmt = "Failed to initialize session store: %v"
)
