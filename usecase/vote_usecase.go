package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"music-contest/domain/model"
	"music-contest/domain/repository"
	"music-contest/infrastructure/logger"
	"music-contest/infrastructure/utils"
)

type IVoteUsecase interface {
	Add(ctx context.Context, userID string, submissionID int64) error
	Remove(ctx context.Context, userID string, submissionID int64) error
}

type voteUsecase struct {
	contests    repository.IContest
	submissions repository.ISubmission
	votes       repository.IVote
	audit       repository.IAudit
}

func NewVoteUsecase(contests repository.IContest, submissions repository.ISubmission, votes repository.IVote, audit repository.IAudit) IVoteUsecase {
	return &voteUsecase{contests: contests, submissions: submissions, votes: votes, audit: audit}
}

// Add records one vote per (submission, user). Voting is only open while the
// submission's contest is in voting status.
func (u *voteUsecase) Add(ctx context.Context, userID string, submissionID int64) error {
	contest, err := u.contestFor(ctx, submissionID)
	if err != nil {
		return err
	}
	if contest.Status != model.ContestStatusVoting {
		return model.Reject(model.RejectContestClosed, "contest %q is not open for voting", contest.ContestID)
	}

	err = u.votes.Add(ctx, submissionID, userID)
	switch {
	case errors.Is(err, repository.ErrDuplicateVote):
		return model.Reject(model.RejectDuplicateVote, "already voted for submission %d", submissionID)
	case errors.Is(err, repository.ErrNotFound):
		return model.Reject(model.RejectSubmissionNotFound, "submission %d does not exist", submissionID)
	case err != nil:
		return u.storageFailure("adding vote", err)
	}

	u.appendAudit(ctx, userID, "add_vote", submissionID)
	return nil
}

func (u *voteUsecase) Remove(ctx context.Context, userID string, submissionID int64) error {
	contest, err := u.contestFor(ctx, submissionID)
	if err != nil {
		return err
	}
	if contest.Status != model.ContestStatusVoting {
		return model.Reject(model.RejectContestClosed, "contest %q is not open for voting", contest.ContestID)
	}

	if err := u.votes.Remove(ctx, submissionID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Reject(model.RejectSubmissionNotFound, "no vote for submission %d", submissionID)
		}
		return u.storageFailure("removing vote", err)
	}

	u.appendAudit(ctx, userID, "remove_vote", submissionID)
	return nil
}

func (u *voteUsecase) contestFor(ctx context.Context, submissionID int64) (*model.Contest, error) {
	sub, err := u.submissions.GetByID(ctx, submissionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectSubmissionNotFound, "submission %d does not exist", submissionID)
	}
	if err != nil {
		return nil, u.storageFailure("looking up submission", err)
	}

	contest, err := u.contests.GetByID(ctx, sub.ContestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectContestNotFound, "contest %q does not exist", sub.ContestID)
	}
	if err != nil {
		return nil, u.storageFailure("looking up contest", err)
	}
	return contest, nil
}

func (u *voteUsecase) appendAudit(ctx context.Context, userID, action string, submissionID int64) {
	payload, _ := json.Marshal(map[string]interface{}{"submission_id": submissionID})
	entry := &model.AuditLogEntry{
		UserID:    userID,
		Action:    action,
		Details:   string(payload),
		CreatedAt: utils.GetCurrentTime(),
	}
	if err := u.audit.Append(ctx, entry); err != nil {
		logger.GetLogger().
			WithField("error", err).
			WithField("action", action).
			Warn("Failed to append audit entry")
	}
}

func (u *voteUsecase) storageFailure(op string, err error) *model.Rejection {
	logger.GetLogger().WithField("error", err).Error("Storage failure while " + op)
	return model.Reject(model.RejectStorageFailure, "storage failure while %s", op)
}
