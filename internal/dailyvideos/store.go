package dailyvideos

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	fileSystemMissingMessageConstant     = "filesystem not configured"
	payloadStatErrorTemplateConstant     = "failed to inspect %s: %w"
	payloadReadErrorTemplateConstant     = "failed to read %s: %w"
	payloadEncodeErrorTemplateConstant   = "failed to encode payload for %s: %w"
	payloadWriteErrorTemplateConstant    = "failed to write %s: %w"
	directoryCreateErrorTemplateConstant = "failed to create directory %s: %w"
	directoryPermissionsConstant         = fs.FileMode(0o755)
	payloadFilePermissionsConstant       = fs.FileMode(0o644)
)

// ErrFileSystemNotConfigured indicates the store was constructed without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// PayloadStore reads and writes payload files.
type PayloadStore struct {
	fileSystem afero.Fs
}

// NewPayloadStore constructs a store over the filesystem.
func NewPayloadStore(fileSystem afero.Fs) (*PayloadStore, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &PayloadStore{fileSystem: fileSystem}, nil
}

// Exists reports whether a file or directory exists at path.
func (store *PayloadStore) Exists(path string) (bool, error) {
	exists, statError := afero.Exists(store.fileSystem, path)
	if statError != nil {
		return false, fmt.Errorf(payloadStatErrorTemplateConstant, path, statError)
	}
	return exists, nil
}

// Load returns the payload at path, or an empty record when no file exists.
// Malformed content yields a ParseError.
func (store *PayloadStore) Load(path string) (Payload, error) {
	exists, existsError := store.Exists(path)
	if existsError != nil {
		return Payload{}, existsError
	}
	if !exists {
		return EmptyPayload(), nil
	}

	content, readError := afero.ReadFile(store.fileSystem, path)
	if readError != nil {
		return Payload{}, fmt.Errorf(payloadReadErrorTemplateConstant, path, readError)
	}

	payload, decodeError := DecodePayload(content)
	if decodeError != nil {
		return Payload{}, ParseError{Path: path, Cause: decodeError}
	}
	return payload, nil
}

// EnsureDirectory creates the directory and its parents when missing.
func (store *PayloadStore) EnsureDirectory(path string) error {
	if mkdirError := store.fileSystem.MkdirAll(path, directoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(directoryCreateErrorTemplateConstant, path, mkdirError)
	}
	return nil
}

// Write replaces the file at path with the encoded record, creating parent
// directories as needed.
func (store *PayloadStore) Write(path string, published PublishedPayload) error {
	content, encodeError := published.Encode()
	if encodeError != nil {
		return fmt.Errorf(payloadEncodeErrorTemplateConstant, path, encodeError)
	}
	if directoryError := store.EnsureDirectory(filepath.Dir(path)); directoryError != nil {
		return directoryError
	}
	if writeError := afero.WriteFile(store.fileSystem, path, content, payloadFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(payloadWriteErrorTemplateConstant, path, writeError)
	}
	return nil
}
