package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasker configuration file
# Values can be overridden by environment variables (TASKER_*) or CLI flags

# Task store file (relative to the working directory, supports ~ and $VAR)
store_file = "tasks.json"

# Shell prompt
prompt = "> "

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Include timestamps and caller locations in log lines
log_timestamps = false
log_caller = false
`
}
