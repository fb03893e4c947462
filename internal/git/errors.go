package git

import "errors"

// Failures surfaced by a contributor walk. Each aborts the whole call.
var (
	ErrRepositoryOpen = errors.New("cannot open repository")
	ErrBranchNotFound = errors.New("branch not found")
	ErrInvalidHead    = errors.New("invalid HEAD")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrDiffFailure    = errors.New("diff failed")
	ErrCommitRead     = errors.New("cannot read commit")
)
