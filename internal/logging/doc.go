// Package logging provides structured logging for the records editor.
//
// It wraps a package-level zap logger. Logging is silent by default; set
// RECORDS_LOG_LEVEL (or pass --log-level) to one of debug, info, warn or
// error to enable it:
//
//	if err := logging.Initialize("debug", "/tmp/records.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Output goes to a file rather than stdout because the interactive editor
// owns the terminal while it runs.
package logging
