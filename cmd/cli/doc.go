// Package cli constructs the daily-videos-push command-line interface. The
// root command is the publish routine itself; this package decorates it with
// configuration loading (embedded defaults, optional file, DAILYVIDEOS_*
// environment variables) and zap logging.
package cli
