package repository

import "errors"

var (
	// ErrRepositoryNotFound is returned when loading a path with no devlogs repository.
	ErrRepositoryNotFound = errors.New("no devlogs repository found")

	// ErrAlreadyInitialized is returned by init without force on an existing repository.
	ErrAlreadyInitialized = errors.New("devlogs repository already initialized")

	// ErrConfigParse is returned when the config or counter file is missing or malformed.
	ErrConfigParse = errors.New("invalid repository configuration")

	// ErrInvalidArgument is returned for caller mistakes such as an unknown list direction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInitializationFailed is returned when a filesystem step of init fails.
	// Steps completed before the failure are left in place.
	ErrInitializationFailed = errors.New("repository initialization failed")

	// ErrSyncFailed is returned when the mirror tool reports a failure.
	ErrSyncFailed = errors.New("mirror sync failed")

	// ErrCorruptEntry is returned when an entry file name cannot be parsed back.
	ErrCorruptEntry = errors.New("unrecognized entry file name")

	// ErrNoEntries is returned when a repository has no log entries.
	ErrNoEntries = errors.New("no log entries found")
)
