package main

// Process exit codes.
const (
	ExitError             = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError       = 2 // Missing or invalid configuration (contact address, timeouts)
	ExitInvalidIdentifier = 3 // At least one identifier contained no DOI
)
