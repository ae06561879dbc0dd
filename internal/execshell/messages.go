package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitFetchSubcommandNameConstant    = "fetch"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitResetSubcommandNameConstant    = "reset"
	gitAddSubcommandNameConstant      = "add"
	gitDiffSubcommandNameConstant     = "diff"
	gitCommitSubcommandNameConstant   = "commit"
	gitPushSubcommandNameConstant     = "push"
	gitMessageFlagConstant            = "-m"
)

const (
	gitFetchStartTemplateConstant               = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant             = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant             = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant    = "Unable to fetch from %s in %s: %s"
	gitCheckoutStartTemplateConstant            = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant          = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant          = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant = "Unable to switch %s to branch %s: %s"
	gitResetStartTemplateConstant               = "Resetting %s to %s"
	gitResetSuccessTemplateConstant             = "%s now matches %s"
	gitResetFailureTemplateConstant             = "Failed to reset %s to %s (exit code %d%s)"
	gitResetExecutionFailureTemplateConstant    = "Unable to reset %s to %s: %s"
	gitAddStartTemplateConstant                 = "Staging %s in %s"
	gitAddSuccessTemplateConstant               = "Staged %s in %s"
	gitAddFailureTemplateConstant               = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant      = "Unable to stage %s in %s: %s"
	gitStagedStartTemplateConstant              = "Checking staged changes in %s"
	gitStagedPresentSuccessTemplateConstant     = "Found %d staged path(s) in %s"
	gitStagedAbsentSuccessTemplateConstant      = "No staged changes in %s"
	gitStagedFailureTemplateConstant            = "Failed to check staged changes in %s (exit code %d%s)"
	gitStagedExecutionFailureTemplateConstant   = "Unable to check staged changes in %s: %s"
	gitCommitStartTemplateConstant              = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant            = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant            = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant   = "Unable to create commit in %s with message %q: %s"
	gitPushStartTemplateConstant                = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant              = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant              = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant     = "Unable to push %s to %s from %s: %s"
)

// stageTemplates holds one message template per lifecycle stage.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch strings.TrimSpace(arguments[0]) {
	case gitFetchSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		return formatter.applyTemplates(stageTemplates{
			start:            gitFetchStartTemplateConstant,
			success:          gitFetchSuccessTemplateConstant,
			failure:          gitFetchFailureTemplateConstant,
			executionFailure: gitFetchExecutionFailureTemplateConstant,
		}, result, failure, stage, remoteName, workingDirectory)
	case gitCheckoutSubcommandNameConstant:
		branchName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		return formatter.applyTemplates(stageTemplates{
			start:            gitCheckoutStartTemplateConstant,
			success:          gitCheckoutSuccessTemplateConstant,
			failure:          gitCheckoutFailureTemplateConstant,
			executionFailure: gitCheckoutExecutionFailureTemplateConstant,
		}, result, failure, stage, workingDirectory, branchName)
	case gitResetSubcommandNameConstant:
		target := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
		return formatter.applyTemplates(stageTemplates{
			start:            gitResetStartTemplateConstant,
			success:          gitResetSuccessTemplateConstant,
			failure:          gitResetFailureTemplateConstant,
			executionFailure: gitResetExecutionFailureTemplateConstant,
		}, result, failure, stage, workingDirectory, target)
	case gitAddSubcommandNameConstant:
		targetPath := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
		return formatter.applyTemplates(stageTemplates{
			start:            gitAddStartTemplateConstant,
			success:          gitAddSuccessTemplateConstant,
			failure:          gitAddFailureTemplateConstant,
			executionFailure: gitAddExecutionFailureTemplateConstant,
		}, result, failure, stage, targetPath, workingDirectory)
	case gitDiffSubcommandNameConstant:
		return formatter.describeStagedQueryMessage(workingDirectory, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		commitMessage := formatter.extractCommitMessage(arguments)
		return formatter.applyTemplates(stageTemplates{
			start:            gitCommitStartTemplateConstant,
			success:          gitCommitSuccessTemplateConstant,
			failure:          gitCommitFailureTemplateConstant,
			executionFailure: gitCommitExecutionFailureTemplateConstant,
		}, result, failure, stage, workingDirectory, commitMessage)
	case gitPushSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		branchName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
		return formatter.applyTemplates(stageTemplates{
			start:            gitPushStartTemplateConstant,
			success:          gitPushSuccessTemplateConstant,
			failure:          gitPushFailureTemplateConstant,
			executionFailure: gitPushExecutionFailureTemplateConstant,
		}, result, failure, stage, branchName, remoteName, workingDirectory)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

// applyTemplates formats the template for the stage; failure stages append the exit code or cause.
func (formatter CommandMessageFormatter) applyTemplates(templates stageTemplates, result ExecutionResult, failure error, stage messageStage, values ...any) string {
	switch stage {
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, values...)
	case messageStageFailure:
		failureValues := append(append([]any{}, values...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, failureValues...)
	case messageStageExecutionFailure:
		failureValues := append(append([]any{}, values...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, failureValues...)
	default:
		return fmt.Sprintf(templates.start, values...)
	}
}

func (formatter CommandMessageFormatter) describeStagedQueryMessage(workingDirectory string, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageSuccess:
		stagedPathCount := len(strings.Fields(result.StandardOutput))
		if stagedPathCount == 0 {
			return fmt.Sprintf(gitStagedAbsentSuccessTemplateConstant, workingDirectory)
		}
		return fmt.Sprintf(gitStagedPresentSuccessTemplateConstant, stagedPathCount, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStagedFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStagedExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return fmt.Sprintf(gitStagedStartTemplateConstant, workingDirectory)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	label := formatter.describeCommandLabel(command)
	switch stage {
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, label)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, label, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, label, formatter.describeFailure(failure))
	default:
		return fmt.Sprintf(genericStartTemplateConstant, label)
	}
}

func (formatter CommandMessageFormatter) describeCommandLabel(command ShellCommand) string {
	commandName := formatter.ensureValue(string(command.Name))
	label := commandName
	if len(command.Details.Arguments) > 0 {
		label = fmt.Sprintf(commandLabelTemplateConstant, commandName, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	if len(strings.TrimSpace(command.Details.WorkingDirectory)) > 0 {
		label += fmt.Sprintf(workingDirectorySuffixTemplateConstant, command.Details.WorkingDirectory)
	}
	return label
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return ""
	}
	return strings.TrimSpace(arguments[index])
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		return trimmedArgument
	}
	return ""
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) == gitMessageFlagConstant {
			return formatter.argumentAtIndex(arguments, argumentIndex+1)
		}
	}
	return ""
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}
