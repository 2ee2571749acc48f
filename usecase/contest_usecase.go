package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"music-contest/domain/dto"
	"music-contest/domain/model"
	"music-contest/domain/repository"
	"music-contest/domain/validation"
	"music-contest/infrastructure/logger"
	"music-contest/infrastructure/utils"
)

type IContestUsecase interface {
	Create(ctx context.Context, userID string, req *dto.CreateContestRequest) (*model.Contest, error)
	Edit(ctx context.Context, userID, contestID string, req *dto.EditContestRequest) (*model.Contest, error)
	Delete(ctx context.Context, userID, contestID string) (*dto.DeleteContestResponse, error)
	Get(ctx context.Context, contestID string) (*model.Contest, error)
	Export(ctx context.Context, contestID string) ([]*model.Submission, error)
}

type contestUsecase struct {
	contests    repository.IContest
	submissions repository.ISubmission
	audit       repository.IAudit
	registry    repository.IPlatformRegistry
}

func NewContestUsecase(contests repository.IContest, submissions repository.ISubmission, audit repository.IAudit, registry repository.IPlatformRegistry) IContestUsecase {
	return &contestUsecase{contests: contests, submissions: submissions, audit: audit, registry: registry}
}

func (u *contestUsecase) Create(ctx context.Context, userID string, req *dto.CreateContestRequest) (*model.Contest, error) {
	if !validation.ContestID(req.ContestID) {
		return nil, model.Reject(model.RejectInvalidInput,
			"contest id must be %d-%d alphanumerics and hyphens", validation.MinContestIDLength, validation.MaxContestIDLength)
	}

	var allowed []string
	if req.AllowedPlatforms != "" {
		allowed = validation.PlatformList(req.AllowedPlatforms, u.registry.Names())
		if allowed == nil {
			return nil, model.Reject(model.RejectInvalidInput, "allowed_platforms contains an unknown platform")
		}
	}

	limit := req.SubmissionLimit
	if limit == 0 {
		limit = 1
	}
	if limit < 1 || limit > validation.MaxSubmissionLimit {
		return nil, model.Reject(model.RejectInvalidInput,
			"submission_limit must be between 1 and %d", validation.MaxSubmissionLimit)
	}

	now := utils.GetCurrentTime()
	contest := &model.Contest{
		ContestID:        req.ContestID,
		PublicChannelID:  req.PublicChannelID,
		ReviewChannelID:  req.ReviewChannelID,
		AllowedPlatforms: allowed,
		MaxSubmissions:   limit,
		Status:           model.ContestStatusActive,
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if desc := validation.CleanUserInput(req.Description); desc != "" {
		contest.Description = &desc
	}
	if prize := validation.CleanUserInput(req.PrizeInfo); prize != "" {
		contest.PrizeInfo = &prize
	}

	err := u.contests.Create(ctx, contest)
	switch {
	case errors.Is(err, repository.ErrDuplicateContest):
		return nil, model.Reject(model.RejectDuplicateContestID, "contest %q already exists", req.ContestID)
	case errors.Is(err, repository.ErrDuplicateChannelPair):
		return nil, model.Reject(model.RejectInvalidInput, "channel pair is already bound to another contest")
	case err != nil:
		return nil, u.storageFailure("creating contest", err)
	}

	u.appendAudit(ctx, userID, "create_contest", map[string]interface{}{
		"contest_id":       contest.ContestID,
		"submission_limit": contest.MaxSubmissions,
	})
	return contest, nil
}

func (u *contestUsecase) Edit(ctx context.Context, userID, contestID string, req *dto.EditContestRequest) (*model.Contest, error) {
	contest, err := u.contests.GetByID(ctx, contestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectContestNotFound, "contest %q does not exist", contestID)
	}
	if err != nil {
		return nil, u.storageFailure("looking up contest", err)
	}

	if req.PublicChannelID != nil {
		contest.PublicChannelID = *req.PublicChannelID
	}
	if req.ReviewChannelID != nil {
		contest.ReviewChannelID = *req.ReviewChannelID
	}
	if req.SubmissionLimit != nil {
		if *req.SubmissionLimit < 1 || *req.SubmissionLimit > validation.MaxSubmissionLimit {
			return nil, model.Reject(model.RejectInvalidInput,
				"submission_limit must be between 1 and %d", validation.MaxSubmissionLimit)
		}
		contest.MaxSubmissions = *req.SubmissionLimit
	}
	if req.Status != nil {
		status := model.ContestStatus(*req.Status)
		if !model.ValidStatus(status) {
			return nil, model.Reject(model.RejectInvalidInput, "unknown status %q", *req.Status)
		}
		contest.Status = status
	}
	if req.Description != nil {
		desc := validation.CleanUserInput(*req.Description)
		if desc == "" {
			contest.Description = nil
		} else {
			contest.Description = &desc
		}
	}
	contest.UpdatedAt = utils.GetCurrentTime()

	if err := u.contests.Update(ctx, contest); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.Reject(model.RejectContestNotFound, "contest %q does not exist", contestID)
		}
		if errors.Is(err, repository.ErrDuplicateChannelPair) {
			return nil, model.Reject(model.RejectInvalidInput, "channel pair is already bound to another contest")
		}
		return nil, u.storageFailure("updating contest", err)
	}

	u.appendAudit(ctx, userID, "edit_contest", map[string]interface{}{
		"contest_id": contestID,
	})
	return contest, nil
}

// Delete cascades the contest's submissions and their votes in one
// transaction and reports how many submissions went with it.
func (u *contestUsecase) Delete(ctx context.Context, userID, contestID string) (*dto.DeleteContestResponse, error) {
	deleted, err := u.contests.Delete(ctx, contestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectContestNotFound, "contest %q does not exist", contestID)
	}
	if err != nil {
		return nil, u.storageFailure("deleting contest", err)
	}

	u.appendAudit(ctx, userID, "delete_contest", map[string]interface{}{
		"contest_id":          contestID,
		"deleted_submissions": deleted,
	})
	return &dto.DeleteContestResponse{ContestID: contestID, DeletedSubmissions: deleted}, nil
}

func (u *contestUsecase) Get(ctx context.Context, contestID string) (*model.Contest, error) {
	contest, err := u.contests.GetByID(ctx, contestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectContestNotFound, "contest %q does not exist", contestID)
	}
	if err != nil {
		return nil, u.storageFailure("looking up contest", err)
	}
	return contest, nil
}

// Export returns every submission of the contest for the CSV download.
func (u *contestUsecase) Export(ctx context.Context, contestID string) ([]*model.Submission, error) {
	if _, err := u.Get(ctx, contestID); err != nil {
		return nil, err
	}
	subs, err := u.submissions.ListByContest(ctx, contestID)
	if err != nil {
		return nil, u.storageFailure("listing submissions", err)
	}
	return subs, nil
}

func (u *contestUsecase) appendAudit(ctx context.Context, userID, action string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}
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

func (u *contestUsecase) storageFailure(op string, err error) *model.Rejection {
	logger.GetLogger().WithField("error", err).Error("Storage failure while " + op)
	return model.Reject(model.RejectStorageFailure, "storage failure while %s", op)
}
