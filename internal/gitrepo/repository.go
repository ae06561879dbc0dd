package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/dailyvideos/internal/execshell"
)

const (
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	remoteNameRequiredMessageConstant           = "remote name must be provided"
	branchNameRequiredMessageConstant           = "branch name must be provided"
	pathRequiredMessageConstant                 = "path to stage must be provided"
	commitMessageRequiredMessageConstant        = "commit message must be provided"
	remoteBranchReferenceTemplateConstant       = "%s/%s"
	gitFetchSubcommandConstant                  = "fetch"
	gitCheckoutSubcommandConstant               = "checkout"
	gitResetSubcommandConstant                  = "reset"
	gitResetHardFlagConstant                    = "--hard"
	gitAddSubcommandConstant                    = "add"
	gitPathSeparatorArgumentConstant            = "--"
	gitDiffSubcommandConstant                   = "diff"
	gitCachedFlagConstant                       = "--cached"
	gitNameOnlyFlagConstant                     = "--name-only"
	gitCommitSubcommandConstant                 = "commit"
	gitMessageFlagConstant                      = "-m"
	gitPushSubcommandConstant                   = "push"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrRepositoryPathRequired indicates the working copy path was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRemoteNameRequired indicates an empty remote name.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// ErrBranchNameRequired indicates an empty branch name.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrPathRequired indicates an empty path to stage.
var ErrPathRequired = errors.New(pathRequiredMessageConstant)

// ErrCommitMessageRequired indicates an empty commit message.
var ErrCommitMessageRequired = errors.New(commitMessageRequiredMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Repository runs git operations against a single working copy.
type Repository struct {
	executor       GitExecutor
	repositoryPath string
}

// NewRepository binds the executor to the working copy at repositoryPath.
func NewRepository(executor GitExecutor, repositoryPath string) (*Repository, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return nil, ErrRepositoryPathRequired
	}
	return &Repository{executor: executor, repositoryPath: trimmedRepositoryPath}, nil
}

// Path returns the working copy path.
func (repository *Repository) Path() string {
	return repository.repositoryPath
}

// Fetch downloads objects and refs from the remote.
func (repository *Repository) Fetch(executionContext context.Context, remoteName string) error {
	trimmedRemoteName, validationError := requireValue(remoteName, ErrRemoteNameRequired)
	if validationError != nil {
		return validationError
	}
	_, executionError := repository.executeGit(executionContext, gitFetchSubcommandConstant, trimmedRemoteName)
	return executionError
}

// Checkout switches the working copy to the branch.
func (repository *Repository) Checkout(executionContext context.Context, branchName string) error {
	trimmedBranchName, validationError := requireValue(branchName, ErrBranchNameRequired)
	if validationError != nil {
		return validationError
	}
	_, executionError := repository.executeGit(executionContext, gitCheckoutSubcommandConstant, trimmedBranchName)
	return executionError
}

// ResetHard discards local changes and moves the current branch to <remote>/<branch>.
func (repository *Repository) ResetHard(executionContext context.Context, remoteName string, branchName string) error {
	trimmedRemoteName, remoteValidationError := requireValue(remoteName, ErrRemoteNameRequired)
	if remoteValidationError != nil {
		return remoteValidationError
	}
	trimmedBranchName, branchValidationError := requireValue(branchName, ErrBranchNameRequired)
	if branchValidationError != nil {
		return branchValidationError
	}
	remoteReference := fmt.Sprintf(remoteBranchReferenceTemplateConstant, trimmedRemoteName, trimmedBranchName)
	_, executionError := repository.executeGit(executionContext, gitResetSubcommandConstant, gitResetHardFlagConstant, remoteReference)
	return executionError
}

// Add stages the path, relative to the working copy root.
func (repository *Repository) Add(executionContext context.Context, relativePath string) error {
	trimmedPath, validationError := requireValue(relativePath, ErrPathRequired)
	if validationError != nil {
		return validationError
	}
	_, executionError := repository.executeGit(executionContext, gitAddSubcommandConstant, gitPathSeparatorArgumentConstant, trimmedPath)
	return executionError
}

// HasStagedChanges reports whether the index differs from HEAD.
func (repository *Repository) HasStagedChanges(executionContext context.Context) (bool, error) {
	executionResult, executionError := repository.executeGit(executionContext, gitDiffSubcommandConstant, gitCachedFlagConstant, gitNameOnlyFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// Commit records the staged changes with the message.
func (repository *Repository) Commit(executionContext context.Context, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return ErrCommitMessageRequired
	}
	_, executionError := repository.executeGit(executionContext, gitCommitSubcommandConstant, gitMessageFlagConstant, message)
	return executionError
}

// Push uploads the branch to the remote.
func (repository *Repository) Push(executionContext context.Context, remoteName string, branchName string) error {
	trimmedRemoteName, remoteValidationError := requireValue(remoteName, ErrRemoteNameRequired)
	if remoteValidationError != nil {
		return remoteValidationError
	}
	trimmedBranchName, branchValidationError := requireValue(branchName, ErrBranchNameRequired)
	if branchValidationError != nil {
		return branchValidationError
	}
	_, executionError := repository.executeGit(executionContext, gitPushSubcommandConstant, trimmedRemoteName, trimmedBranchName)
	return executionError
}

func (repository *Repository) executeGit(executionContext context.Context, arguments ...string) (execshell.ExecutionResult, error) {
	return repository.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repository.repositoryPath,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	})
}

func requireValue(value string, emptyError error) (string, error) {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return "", emptyError
	}
	return trimmedValue, nil
}
