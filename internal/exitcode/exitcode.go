// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, task not found).
	UserError = 1

	// ConfigError indicates an unreadable or invalid config file or setting.
	ConfigError = 2

	// StoreError indicates the store could not be read, decoded or written.
	StoreError = 3
)
