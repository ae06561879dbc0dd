package dailyvideos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	versionControlMissingMessageConstant  = "version control not configured"
	payloadStoreMissingMessageConstant    = "payload store not configured"
	sourceRootRequiredMessageConstant     = "source root must be provided"
	repositoryRootRequiredMessageConstant = "repository root must be provided"
	destinationDirRequiredMessageConstant = "destination directory must be provided"
	branchNameRequiredMessageConstant     = "branch name must be provided"
	remoteNameRequiredMessageConstant     = "remote name must be provided"
	versionControlErrorTemplateConstant   = "git %s failed: %v"
	commitMessageTemplateConstant         = "update daily videos json: %s"
	skipMessageTemplateConstant           = "SKIP: source not found: %s\n"
	mergedMessageTemplateConstant         = "MERGED: %s (count=%d)\n"
	unchangedMessageTemplateConstant      = "UNCHANGED: no staged git changes for %s\n"
	publishedMessageTemplateConstant      = "PUSHED: %s to %s/%s\n"

	operationFetchConstant         = "fetch"
	operationCheckoutConstant      = "checkout"
	operationResetConstant         = "reset"
	operationAddConstant           = "add"
	operationStagedChangesConstant = "staged changes query"
	operationCommitConstant        = "commit"
	operationPushConstant          = "push"

	sourceMissingLogMessageConstant     = "source payload not found, skipping"
	workingCopySyncedLogMessageConstant = "working copy synchronized with remote branch"
	payloadMergedLogMessageConstant     = "merged payload written"
	noStagedChangesLogMessageConstant   = "no staged changes, skipping commit"
	payloadPublishedLogMessageConstant  = "daily payload pushed"
	logFieldSourcePathConstant          = "source_path"
	logFieldDestinationPathConstant     = "destination_path"
	logFieldExistingCountConstant       = "existing_count"
	logFieldNewCountConstant            = "new_count"
	logFieldMergedCountConstant         = "merged_count"
	logFieldDaysConstant                = "days"
	logFieldRemoteConstant              = "remote"
	logFieldBranchConstant              = "branch"
)

// ErrVersionControlNotConfigured indicates the version control dependency was missing.
var ErrVersionControlNotConfigured = errors.New(versionControlMissingMessageConstant)

// ErrPayloadStoreNotConfigured indicates the payload store dependency was missing.
var ErrPayloadStoreNotConfigured = errors.New(payloadStoreMissingMessageConstant)

// ErrSourceRootRequired indicates the producer directory option was empty.
var ErrSourceRootRequired = errors.New(sourceRootRequiredMessageConstant)

// ErrRepositoryRootRequired indicates the working copy option was empty.
var ErrRepositoryRootRequired = errors.New(repositoryRootRequiredMessageConstant)

// ErrDestinationDirectoryRequired indicates the destination directory option was empty.
var ErrDestinationDirectoryRequired = errors.New(destinationDirRequiredMessageConstant)

// ErrBranchNameRequired indicates the branch option was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrRemoteNameRequired indicates the remote option was empty.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// VersionControl is the set of git operations a publish run needs.
type VersionControl interface {
	Fetch(executionContext context.Context, remoteName string) error
	Checkout(executionContext context.Context, branchName string) error
	ResetHard(executionContext context.Context, remoteName string, branchName string) error
	Add(executionContext context.Context, relativePath string) error
	HasStagedChanges(executionContext context.Context) (bool, error)
	Commit(executionContext context.Context, message string) error
	Push(executionContext context.Context, remoteName string, branchName string) error
}

// VersionControlError reports a failed git operation.
type VersionControlError struct {
	Operation string
	Cause     error
}

// Error describes the failed operation.
func (failure VersionControlError) Error() string {
	return fmt.Sprintf(versionControlErrorTemplateConstant, failure.Operation, failure.Cause)
}

// Unwrap exposes the underlying git failure.
func (failure VersionControlError) Unwrap() error {
	return failure.Cause
}

// Outcome classifies how a run ended.
type Outcome string

// Run outcomes.
const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomePublished Outcome = "published"
)

// Dependencies enumerates external collaborators required for publishing.
// Output receives one status line per completed step; nil discards them.
type Dependencies struct {
	VersionControl VersionControl
	Store          *PayloadStore
	Clock          Clock
	Logger         *zap.Logger
	Output         io.Writer
}

// Options configures a publish run.
type Options struct {
	SourceRoot           string
	RepositoryRoot       string
	DestinationDirectory string
	BranchName           string
	RemoteName           string
}

// Result captures the observable outcomes of a run.
type Result struct {
	Outcome         Outcome
	Filename        string
	SourcePath      string
	DestinationPath string
	Count           int
	Days            int
}

// Publisher merges the daily payload into the working copy and publishes it.
type Publisher struct {
	versionControl VersionControl
	store          *PayloadStore
	clock          Clock
	logger         *zap.Logger
	output         io.Writer
}

// NewPublisher constructs a Publisher from the provided dependencies.
func NewPublisher(dependencies Dependencies) (*Publisher, error) {
	if dependencies.VersionControl == nil {
		return nil, ErrVersionControlNotConfigured
	}
	if dependencies.Store == nil {
		return nil, ErrPayloadStoreNotConfigured
	}
	clock := dependencies.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}
	return &Publisher{
		versionControl: dependencies.VersionControl,
		store:          dependencies.Store,
		clock:          clock,
		logger:         logger,
		output:         output,
	}, nil
}

// Run performs one publish cycle. A missing source file and an unchanged
// destination are successful outcomes; any other failure aborts the run
// without undoing what was already written locally.
func (publisher *Publisher) Run(executionContext context.Context, options Options) (Result, error) {
	sanitizedOptions, validationError := options.validate()
	if validationError != nil {
		return Result{}, validationError
	}

	now := publisher.clock.Now()
	filename := ResolveFilename(now)
	destinationDirectory := filepath.Join(sanitizedOptions.RepositoryRoot, sanitizedOptions.DestinationDirectory)
	result := Result{
		Outcome:         OutcomeSkipped,
		Filename:        filename,
		SourcePath:      filepath.Join(sanitizedOptions.SourceRoot, filename),
		DestinationPath: filepath.Join(destinationDirectory, filename),
	}

	sourceExists, sourceError := publisher.store.Exists(result.SourcePath)
	if sourceError != nil {
		return Result{}, sourceError
	}
	if !sourceExists {
		publisher.logger.Info(sourceMissingLogMessageConstant, zap.String(logFieldSourcePathConstant, result.SourcePath))
		fmt.Fprintf(publisher.output, skipMessageTemplateConstant, result.SourcePath)
		return result, nil
	}

	if directoryError := publisher.store.EnsureDirectory(destinationDirectory); directoryError != nil {
		return Result{}, directoryError
	}

	if syncError := publisher.synchronizeWorkingCopy(executionContext, sanitizedOptions); syncError != nil {
		return Result{}, syncError
	}

	existingPayload, existingError := publisher.store.Load(result.DestinationPath)
	if existingError != nil {
		return Result{}, existingError
	}
	newPayload, newError := publisher.store.Load(result.SourcePath)
	if newError != nil {
		return Result{}, newError
	}

	existingEntries := ExtractEntries(existingPayload)
	newEntries := ExtractEntries(newPayload)
	mergedEntries := MergeByIdentifier(existingEntries, newEntries)

	published := NewPublishedPayload(mergedEntries, existingPayload, FormatDate(now))
	if writeError := publisher.store.Write(result.DestinationPath, published); writeError != nil {
		return Result{}, writeError
	}
	result.Count = published.Count
	result.Days = published.Days

	publisher.logger.Info(
		payloadMergedLogMessageConstant,
		zap.String(logFieldDestinationPathConstant, result.DestinationPath),
		zap.Int(logFieldExistingCountConstant, len(existingEntries)),
		zap.Int(logFieldNewCountConstant, len(newEntries)),
		zap.Int(logFieldMergedCountConstant, published.Count),
		zap.Int(logFieldDaysConstant, published.Days),
	)
	fmt.Fprintf(publisher.output, mergedMessageTemplateConstant, filename, published.Count)

	relativePath := path.Join(filepath.ToSlash(sanitizedOptions.DestinationDirectory), filename)
	if addError := publisher.versionControl.Add(executionContext, relativePath); addError != nil {
		return Result{}, VersionControlError{Operation: operationAddConstant, Cause: addError}
	}

	staged, stagedError := publisher.versionControl.HasStagedChanges(executionContext)
	if stagedError != nil {
		return Result{}, VersionControlError{Operation: operationStagedChangesConstant, Cause: stagedError}
	}
	if !staged {
		publisher.logger.Info(noStagedChangesLogMessageConstant, zap.String(logFieldDestinationPathConstant, result.DestinationPath))
		fmt.Fprintf(publisher.output, unchangedMessageTemplateConstant, filename)
		result.Outcome = OutcomeUnchanged
		return result, nil
	}

	if commitError := publisher.versionControl.Commit(executionContext, fmt.Sprintf(commitMessageTemplateConstant, filename)); commitError != nil {
		return Result{}, VersionControlError{Operation: operationCommitConstant, Cause: commitError}
	}
	if pushError := publisher.versionControl.Push(executionContext, sanitizedOptions.RemoteName, sanitizedOptions.BranchName); pushError != nil {
		return Result{}, VersionControlError{Operation: operationPushConstant, Cause: pushError}
	}

	publisher.logger.Info(
		payloadPublishedLogMessageConstant,
		zap.String(logFieldRemoteConstant, sanitizedOptions.RemoteName),
		zap.String(logFieldBranchConstant, sanitizedOptions.BranchName),
	)
	fmt.Fprintf(publisher.output, publishedMessageTemplateConstant, filename, sanitizedOptions.RemoteName, sanitizedOptions.BranchName)
	result.Outcome = OutcomePublished
	return result, nil
}

// synchronizeWorkingCopy discards local state so the merge starts from the
// latest published branch.
func (publisher *Publisher) synchronizeWorkingCopy(executionContext context.Context, options Options) error {
	if fetchError := publisher.versionControl.Fetch(executionContext, options.RemoteName); fetchError != nil {
		return VersionControlError{Operation: operationFetchConstant, Cause: fetchError}
	}
	if checkoutError := publisher.versionControl.Checkout(executionContext, options.BranchName); checkoutError != nil {
		return VersionControlError{Operation: operationCheckoutConstant, Cause: checkoutError}
	}
	if resetError := publisher.versionControl.ResetHard(executionContext, options.RemoteName, options.BranchName); resetError != nil {
		return VersionControlError{Operation: operationResetConstant, Cause: resetError}
	}
	publisher.logger.Debug(
		workingCopySyncedLogMessageConstant,
		zap.String(logFieldRemoteConstant, options.RemoteName),
		zap.String(logFieldBranchConstant, options.BranchName),
	)
	return nil
}

func (options Options) validate() (Options, error) {
	sanitized := Options{
		SourceRoot:           strings.TrimSpace(options.SourceRoot),
		RepositoryRoot:       strings.TrimSpace(options.RepositoryRoot),
		DestinationDirectory: strings.TrimSpace(options.DestinationDirectory),
		BranchName:           strings.TrimSpace(options.BranchName),
		RemoteName:           strings.TrimSpace(options.RemoteName),
	}
	switch {
	case len(sanitized.SourceRoot) == 0:
		return Options{}, ErrSourceRootRequired
	case len(sanitized.RepositoryRoot) == 0:
		return Options{}, ErrRepositoryRootRequired
	case len(sanitized.DestinationDirectory) == 0:
		return Options{}, ErrDestinationDirectoryRequired
	case len(sanitized.BranchName) == 0:
		return Options{}, ErrBranchNameRequired
	case len(sanitized.RemoteName) == 0:
		return Options{}, ErrRemoteNameRequired
	}
	return sanitized, nil
}
