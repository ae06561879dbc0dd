package dailyvideos

import (
	"strings"

	pathutils "github.com/temirov/dailyvideos/internal/utils/path"
)

const (
	defaultRepositoryRootConstant       = "."
	defaultDestinationDirectoryConstant = "daily_videos"
	defaultBranchNameConstant           = "daily-input"
	defaultRemoteNameConstant           = "origin"
	configurationKeySeparatorConstant   = "."
	sourceRootConfigurationKeyConstant  = "source_root"
	repositoryRootConfigurationKey      = "repository_root"
	destinationDirConfigurationKey      = "destination_dir"
	branchConfigurationKey              = "branch"
	remoteConfigurationKey              = "remote"
)

// CommandConfiguration captures configuration values for the publish command.
type CommandConfiguration struct {
	SourceRoot           string `mapstructure:"source_root"`
	RepositoryRoot       string `mapstructure:"repository_root"`
	DestinationDirectory string `mapstructure:"destination_dir"`
	BranchName           string `mapstructure:"branch"`
	RemoteName           string `mapstructure:"remote"`
}

// DefaultCommandConfiguration provides baseline configuration values.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SourceRoot:           "",
		RepositoryRoot:       defaultRepositoryRootConstant,
		DestinationDirectory: defaultDestinationDirectoryConstant,
		BranchName:           defaultBranchNameConstant,
		RemoteName:           defaultRemoteNameConstant,
	}
}

// DefaultConfigurationValues returns the defaults keyed for the loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(prefix, sourceRootConfigurationKeyConstant): defaults.SourceRoot,
		prefixedKey(prefix, repositoryRootConfigurationKey):     defaults.RepositoryRoot,
		prefixedKey(prefix, destinationDirConfigurationKey):     defaults.DestinationDirectory,
		prefixedKey(prefix, branchConfigurationKey):             defaults.BranchName,
		prefixedKey(prefix, remoteConfigurationKey):             defaults.RemoteName,
	}
}

// Sanitize trims values and expands a leading ~ in paths, without applying defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	homeExpander := pathutils.NewHomeExpander()
	return CommandConfiguration{
		SourceRoot:           homeExpander.Expand(strings.TrimSpace(configuration.SourceRoot)),
		RepositoryRoot:       homeExpander.Expand(strings.TrimSpace(configuration.RepositoryRoot)),
		DestinationDirectory: strings.TrimSpace(configuration.DestinationDirectory),
		BranchName:           strings.TrimSpace(configuration.BranchName),
		RemoteName:           strings.TrimSpace(configuration.RemoteName),
	}
}

// Options converts the configuration into run options.
func (configuration CommandConfiguration) Options() Options {
	return Options{
		SourceRoot:           configuration.SourceRoot,
		RepositoryRoot:       configuration.RepositoryRoot,
		DestinationDirectory: configuration.DestinationDirectory,
		BranchName:           configuration.BranchName,
		RemoteName:           configuration.RemoteName,
	}
}

func prefixedKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
