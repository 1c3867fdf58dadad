// Package logging provides leveled logging for the deflicker pipeline.
//
// The log level is read once from the environment: set LOG_LEVEL to
// debug/info/warn/error, or DEBUG=true as a shortcut for debug level.
// All output goes through the standard library log package so timestamps
// and destinations follow its configuration.
package logging
