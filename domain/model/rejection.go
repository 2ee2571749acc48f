package model

import "fmt"

// RejectionKind enumerates every way the core can turn down a request. Each
// carries enough structure for the presentation layer to render a specific
// message; a rejection is a result, not a fault.
type RejectionKind string

const (
	RejectInvalidInput        RejectionKind = "invalid_input"
	RejectRateLimited         RejectionKind = "rate_limited"
	RejectContestNotFound     RejectionKind = "contest_not_found"
	RejectSubmissionNotFound  RejectionKind = "submission_not_found"
	RejectContestClosed       RejectionKind = "contest_closed"
	RejectUnsupportedPlatform RejectionKind = "unsupported_platform"
	RejectPlatformNotAllowed  RejectionKind = "platform_not_allowed"
	RejectMetadataUnavailable RejectionKind = "metadata_unavailable"
	RejectLimitExceeded       RejectionKind = "limit_exceeded"
	RejectDuplicateSubmission RejectionKind = "duplicate_submission"
	RejectDuplicateVote       RejectionKind = "duplicate_vote"
	RejectNotAuthorized       RejectionKind = "not_authorized"
	RejectDuplicateContestID  RejectionKind = "duplicate_contest_id"
	RejectStorageFailure      RejectionKind = "storage_failure"
)

// Rejection is the typed failure result returned by usecases. It implements
// error so it can travel through error returns, but callers are expected to
// branch on Kind rather than on the message.
type Rejection struct {
	Kind   RejectionKind `json:"kind"`
	Reason string        `json:"reason"`
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Reason)
}

// Reject builds a Rejection with a formatted reason.
func Reject(kind RejectionKind, format string, args ...interface{}) *Rejection {
	return &Rejection{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal problem attached to an otherwise successful result,
// e.g. a failed channel post after the submission row was committed.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}
