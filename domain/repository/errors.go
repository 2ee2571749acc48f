package repository

import "errors"

// Sentinel errors surfaced by store implementations. Usecases translate them
// into the rejection taxonomy; anything else is a StorageFailure.
var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateContest     = errors.New("contest id already exists")
	ErrDuplicateChannelPair = errors.New("channel pair already bound to a contest")
	ErrDuplicateSubmission  = errors.New("submission already exists for this contest, user and url")
	ErrDuplicateVote        = errors.New("vote already exists for this submission and user")
	ErrLimitReached         = errors.New("submission limit reached for this user")
)
