package main

// Exit codes returned by refcheck commands.
const (
	ExitSuccess     = 0 // Success (including batches with unverified citations)
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, no providers enabled)
	ExitDataError   = 3 // Data error (empty input, unreadable PDF)
)
