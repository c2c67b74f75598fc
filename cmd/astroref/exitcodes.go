package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing token, invalid paths)
	ExitNotFound    = 3 // Bibcode, library, or identifier not found
	ExitAuthError   = 4 // ADS rejected the API token
	ExitAPIError    = 5 // ADS API error (rate limit, remote failure)
	ExitDownload    = 6 // PDF download failed at every source
)
