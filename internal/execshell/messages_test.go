package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesGitSubcommands(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	testCases := []struct {
		name            string
		arguments       []string
		result          ExecutionResult
		failure         error
		stage           messageStage
		expectedMessage string
	}{
		{
			name:            "fetch_start",
			arguments:       []string{"fetch", "origin"},
			stage:           messageStageStart,
			expectedMessage: "Fetching from origin in /srv/tools",
		},
		{
			name:            "checkout_success",
			arguments:       []string{"checkout", "daily-input"},
			stage:           messageStageSuccess,
			expectedMessage: "/srv/tools now on branch daily-input",
		},
		{
			name:            "reset_failure",
			arguments:       []string{"reset", "--hard", "origin/daily-input"},
			result:          ExecutionResult{ExitCode: 128, StandardError: "fatal: ambiguous argument\n"},
			stage:           messageStageFailure,
			expectedMessage: "Failed to reset /srv/tools to origin/daily-input (exit code 128: fatal: ambiguous argument)",
		},
		{
			name:            "add_start",
			arguments:       []string{"add", "--", "daily_videos/videos_2024-05-01.json"},
			stage:           messageStageStart,
			expectedMessage: "Staging daily_videos/videos_2024-05-01.json in /srv/tools",
		},
		{
			name:            "staged_query_present",
			arguments:       []string{"diff", "--cached", "--name-only"},
			result:          ExecutionResult{StandardOutput: "daily_videos/videos_2024-05-01.json\n"},
			stage:           messageStageSuccess,
			expectedMessage: "Found 1 staged path(s) in /srv/tools",
		},
		{
			name:            "staged_query_absent",
			arguments:       []string{"diff", "--cached", "--name-only"},
			stage:           messageStageSuccess,
			expectedMessage: "No staged changes in /srv/tools",
		},
		{
			name:            "commit_success",
			arguments:       []string{"commit", "-m", "update daily videos json: videos_2024-05-01.json"},
			stage:           messageStageSuccess,
			expectedMessage: "Created commit in /srv/tools with message \"update daily videos json: videos_2024-05-01.json\"",
		},
		{
			name:            "push_execution_failure",
			arguments:       []string{"push", "origin", "daily-input"},
			failure:         errors.New("signal: killed"),
			stage:           messageStageExecutionFailure,
			expectedMessage: "Unable to push daily-input to origin from /srv/tools: signal: killed",
		},
		{
			name:            "unknown_subcommand",
			arguments:       []string{"status", "--porcelain"},
			stage:           messageStageStart,
			expectedMessage: "Running git status --porcelain (in /srv/tools)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: testCase.arguments, WorkingDirectory: "/srv/tools"}}
			message := formatter.buildMessage(command, testCase.result, testCase.failure, testCase.stage)
			require.Equal(testInstance, testCase.expectedMessage, message)
		})
	}
}

func TestCommandMessageFormatterFallsBackForEmptyArguments(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	message := formatter.BuildStartedMessage(ShellCommand{Name: CommandGit})
	require.Equal(testInstance, "Running git", message)
}
