package dailyvideos

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dailyvideos/internal/execshell"
	"github.com/temirov/dailyvideos/internal/gitrepo"
)

const (
	commandUseConstant              = "daily-videos-push"
	commandShortDescriptionConstant = "Merge today's video JSON into the publishing branch and push it"
	commandLongDescriptionConstant  = "daily-videos-push merges videos_<date>.json from the producer directory into the copy tracked on the publishing branch, keyed by video id, then commits and pushes the result when it changed."
	sourceRootFlagNameConstant      = "source-root"
	sourceRootFlagUsageConstant     = "Directory where the producer writes videos_<date>.json."
	repositoryRootFlagNameConstant  = "repository-root"
	repositoryRootFlagUsageConstant = "Working copy of the repository that receives the merged file."
	branchFlagNameConstant          = "branch"
	branchFlagUsageConstant         = "Branch the merged file is published to."
	remoteFlagNameConstant          = "remote"
	remoteFlagUsageConstant         = "Remote the branch is fetched from and pushed to."
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the publish command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	GitExecutor           gitrepo.GitExecutor
	VersionControl        VersionControl
	FileSystem            afero.Fs
	Clock                 Clock
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the publish command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(sourceRootFlagNameConstant, "", sourceRootFlagUsageConstant)
	command.Flags().String(repositoryRootFlagNameConstant, "", repositoryRootFlagUsageConstant)
	command.Flags().String(branchFlagNameConstant, "", branchFlagUsageConstant)
	command.Flags().String(remoteFlagNameConstant, "", remoteFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, flagError := builder.applyFlagOverrides(command, builder.resolveConfiguration())
	if flagError != nil {
		return flagError
	}
	configuration = configuration.Sanitize()

	logger := builder.resolveLogger()

	versionControl, versionControlError := builder.resolveVersionControl(logger, configuration.RepositoryRoot)
	if versionControlError != nil {
		return versionControlError
	}

	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	store, storeError := NewPayloadStore(fileSystem)
	if storeError != nil {
		return storeError
	}

	publisher, publisherError := NewPublisher(Dependencies{
		VersionControl: versionControl,
		Store:          store,
		Clock:          builder.Clock,
		Logger:         logger,
		Output:         command.OutOrStdout(),
	})
	if publisherError != nil {
		return publisherError
	}

	_, runError := publisher.Run(command.Context(), configuration.Options())
	return runError
}

func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration CommandConfiguration) (CommandConfiguration, error) {
	overrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: sourceRootFlagNameConstant, target: &configuration.SourceRoot},
		{flagName: repositoryRootFlagNameConstant, target: &configuration.RepositoryRoot},
		{flagName: branchFlagNameConstant, target: &configuration.BranchName},
		{flagName: remoteFlagNameConstant, target: &configuration.RemoteName},
	}

	for _, override := range overrides {
		if !command.Flags().Changed(override.flagName) {
			continue
		}
		flagValue, flagError := command.Flags().GetString(override.flagName)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		*override.target = flagValue
	}
	return configuration, nil
}

func (builder *CommandBuilder) resolveVersionControl(logger *zap.Logger, repositoryRoot string) (VersionControl, error) {
	if builder.VersionControl != nil {
		return builder.VersionControl, nil
	}

	gitExecutor := builder.GitExecutor
	if gitExecutor == nil {
		shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = shellExecutor
	}
	return gitrepo.NewRepository(gitExecutor, repositoryRoot)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
