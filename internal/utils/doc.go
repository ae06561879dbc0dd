// Package utils exposes the logging and configuration plumbing shared by the
// command-line entry point and the publisher.
//
// LoggerFactory builds zap loggers in structured or console form and
// ConfigurationLoader layers embedded defaults, an optional YAML or JSON file
// and prefixed environment variables through Viper.
package utils
