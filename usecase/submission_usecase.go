package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"music-contest/domain/dto"
	"music-contest/domain/model"
	"music-contest/domain/repository"
	"music-contest/domain/validation"
	"music-contest/infrastructure/logger"
	"music-contest/infrastructure/utils"
)

type ISubmissionUsecase interface {
	Submit(ctx context.Context, userID, userName string, req *dto.SubmitSongRequest) (*dto.SubmitSongResponse, error)
	Delete(ctx context.Context, userID string, isAdmin bool, submissionID int64) (*dto.DeleteSubmissionResponse, error)
}

type submissionUsecase struct {
	contests      repository.IContest
	submissions   repository.ISubmission
	audit         repository.IAudit
	registry      repository.IPlatformRegistry
	metadataCache repository.IMetadataCache
	poster        repository.IMessagePoster
	publisher     repository.IEventPublisher
	submitLimiter repository.IRateLimiter
	deleteLimiter repository.IRateLimiter
}

func NewSubmissionUsecase(
	contests repository.IContest,
	submissions repository.ISubmission,
	audit repository.IAudit,
	registry repository.IPlatformRegistry,
	metadataCache repository.IMetadataCache,
	poster repository.IMessagePoster,
	publisher repository.IEventPublisher,
	submitLimiter repository.IRateLimiter,
	deleteLimiter repository.IRateLimiter,
) ISubmissionUsecase {
	return &submissionUsecase{
		contests:      contests,
		submissions:   submissions,
		audit:         audit,
		registry:      registry,
		metadataCache: metadataCache,
		poster:        poster,
		publisher:     publisher,
		submitLimiter: submitLimiter,
		deleteLimiter: deleteLimiter,
	}
}

// Submit runs the admission pipeline. Checks run cheapest-first and every
// failure is terminal: validation, rate limit, contest state, platform, then
// metadata, and only then the transactional insert. The metadata fetch happens
// before the transaction opens so no network I/O runs under the write lock.
func (u *submissionUsecase) Submit(ctx context.Context, userID, userName string, req *dto.SubmitSongRequest) (*dto.SubmitSongResponse, error) {
	songName := validation.CleanUserInput(req.SongName)
	rawURL := strings.TrimSpace(req.URL)

	switch {
	case !validation.ContestID(req.ContestID):
		return nil, model.Reject(model.RejectInvalidInput, "invalid contest id %q", req.ContestID)
	case !validation.SongName(songName):
		return nil, model.Reject(model.RejectInvalidInput, "song name must be 1-%d printable characters", validation.MaxSongNameLength)
	case !validation.URL(rawURL):
		return nil, model.Reject(model.RejectInvalidInput, "url is not an acceptable http(s) link")
	}

	if !u.submitLimiter.IsAllowed(userID) {
		wait := u.submitLimiter.RemainingTime(userID).Round(time.Second)
		return nil, model.Reject(model.RejectRateLimited, "too many submissions, retry in %s", wait)
	}

	contest, err := u.contests.GetByID(ctx, req.ContestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectContestNotFound, "contest %q does not exist", req.ContestID)
	}
	if err != nil {
		return nil, u.storageFailure("looking up contest", err)
	}
	if !contest.Status.AcceptsSubmissions() {
		return nil, model.Reject(model.RejectContestClosed, "contest %q is not accepting submissions", contest.ContestID)
	}

	handler := u.registry.Resolve(rawURL)
	if handler == nil {
		return nil, model.Reject(model.RejectUnsupportedPlatform,
			"url is not from a supported platform (%s)", strings.Join(u.registry.Names(), ", "))
	}
	if !contest.IsPlatformAllowed(handler.Name()) {
		return nil, model.Reject(model.RejectPlatformNotAllowed,
			"%s submissions are not allowed in contest %q", handler.Name(), contest.ContestID)
	}

	metadata := u.resolveMetadata(ctx, handler, rawURL)
	if metadata == nil {
		return nil, model.Reject(model.RejectMetadataUnavailable, "could not fetch track details, try again later")
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, u.storageFailure("encoding metadata", err)
	}
	metadataStr := string(metadataJSON)

	sub := &model.Submission{
		ContestID: contest.ContestID,
		UserID:    userID,
		UserName:  userName,
		SongName:  songName,
		Platform:  handler.Name(),
		URL:       metadata.EmbedURL,
		Metadata:  &metadataStr,
		CreatedAt: utils.GetCurrentTime(),
	}

	submissionID, err := u.submissions.Insert(ctx, sub, contest.MaxSubmissions)
	switch {
	case errors.Is(err, repository.ErrLimitReached):
		return nil, model.Reject(model.RejectLimitExceeded,
			"submission limit of %d reached for contest %q", contest.MaxSubmissions, contest.ContestID)
	case errors.Is(err, repository.ErrDuplicateSubmission):
		return nil, model.Reject(model.RejectDuplicateSubmission, "this track is already submitted to contest %q", contest.ContestID)
	case err != nil:
		return nil, u.storageFailure("inserting submission", err)
	}
	sub.SubmissionID = submissionID

	// The row is committed; everything past this point can only add warnings.
	warnings := u.postMessages(ctx, contest, sub, metadata)

	u.appendAudit(ctx, userID, "submit_song", map[string]interface{}{
		"contest_id":    contest.ContestID,
		"submission_id": submissionID,
		"platform":      sub.Platform,
		"url":           sub.URL,
	})

	if u.publisher != nil {
		if err := u.publisher.PublishSubmissionAccepted(ctx, sub); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to publish submission event")
		}
	}

	return &dto.SubmitSongResponse{
		SubmissionID: submissionID,
		Platform:     sub.Platform,
		CanonicalURL: sub.URL,
		Warnings:     warnings,
	}, nil
}

// resolveMetadata consults the cache before the handler and writes through on
// success. Cache errors are logged and otherwise invisible: a broken cache
// must behave like a cold one.
func (u *submissionUsecase) resolveMetadata(ctx context.Context, handler repository.IPlatformHandler, rawURL string) *model.TrackMetadata {
	if u.metadataCache != nil {
		cached, err := u.metadataCache.Get(ctx, rawURL)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Metadata cache read failed")
		}
		if cached != nil {
			return cached
		}
	}

	metadata, err := handler.GetMetadata(ctx, rawURL)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			WithField("platform", handler.Name()).
			Warn("Metadata fetch failed")
		return nil
	}

	if u.metadataCache != nil {
		if err := u.metadataCache.Set(ctx, rawURL, metadata); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Metadata cache write failed")
		}
	}
	return metadata
}

// postMessages delivers the review and public payloads and records whichever
// message ids came back. Failures become warnings on the response.
func (u *submissionUsecase) postMessages(ctx context.Context, contest *model.Contest, sub *model.Submission, metadata *model.TrackMetadata) []model.Warning {
	var warnings []model.Warning
	var publicMsgID, reviewMsgID *string

	reviewID, err := u.poster.PostReview(ctx, contest.ReviewChannelID, &model.ReviewPayload{
		SubmissionID: sub.SubmissionID,
		ContestID:    sub.ContestID,
		SongName:     sub.SongName,
		Submitter:    sub.UserName,
		SubmitterID:  sub.UserID,
		Platform:     sub.Platform,
		URL:          sub.URL,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Review channel post failed")
		warnings = append(warnings, model.Warning{Stage: "post_review", Message: err.Error()})
	} else {
		reviewMsgID = &reviewID
	}

	publicID, err := u.poster.PostPublic(ctx, contest.PublicChannelID, &model.PublicPayload{
		SubmissionID: sub.SubmissionID,
		ContestID:    sub.ContestID,
		SongName:     sub.SongName,
		Author:       metadata.Author,
		Platform:     sub.Platform,
		URL:          sub.URL,
		ImageURL:     metadata.ImageURL,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Public channel post failed")
		warnings = append(warnings, model.Warning{Stage: "post_public", Message: err.Error()})
	} else {
		publicMsgID = &publicID
	}

	if publicMsgID != nil || reviewMsgID != nil {
		if err := u.submissions.SetMessageIDs(ctx, sub.SubmissionID, publicMsgID, reviewMsgID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to record message ids")
			warnings = append(warnings, model.Warning{Stage: "record_message_ids", Message: err.Error()})
		}
	}
	return warnings
}

// Delete removes a submission on behalf of its owner or an admin, then cleans
// up the channel messages best-effort.
func (u *submissionUsecase) Delete(ctx context.Context, userID string, isAdmin bool, submissionID int64) (*dto.DeleteSubmissionResponse, error) {
	if !u.deleteLimiter.IsAllowed(userID) {
		wait := u.deleteLimiter.RemainingTime(userID).Round(time.Second)
		return nil, model.Reject(model.RejectRateLimited, "too many deletions, retry in %s", wait)
	}

	sub, err := u.submissions.GetByID(ctx, submissionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectSubmissionNotFound, "submission %d does not exist", submissionID)
	}
	if err != nil {
		return nil, u.storageFailure("looking up submission", err)
	}
	if sub.UserID != userID && !isAdmin {
		return nil, model.Reject(model.RejectNotAuthorized, "only the submitter or an admin can delete a submission")
	}

	contest, err := u.contests.GetByID(ctx, sub.ContestID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, u.storageFailure("looking up contest", err)
	}

	if err := u.submissions.Delete(ctx, submissionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.Reject(model.RejectSubmissionNotFound, "submission %d does not exist", submissionID)
		}
		return nil, u.storageFailure("deleting submission", err)
	}

	var warnings []model.Warning
	if contest != nil {
		warnings = u.cleanupMessages(ctx, contest, sub)
	}

	u.appendAudit(ctx, userID, "delete_submission", map[string]interface{}{
		"contest_id":    sub.ContestID,
		"submission_id": submissionID,
		"as_admin":      isAdmin && sub.UserID != userID,
	})

	return &dto.DeleteSubmissionResponse{SubmissionID: submissionID, Warnings: warnings}, nil
}

func (u *submissionUsecase) cleanupMessages(ctx context.Context, contest *model.Contest, sub *model.Submission) []model.Warning {
	var warnings []model.Warning
	if sub.PublicMessageID != nil {
		if err := u.poster.DeleteMessage(ctx, contest.PublicChannelID, *sub.PublicMessageID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Public message cleanup failed")
			warnings = append(warnings, model.Warning{Stage: "delete_public_message", Message: err.Error()})
		}
	}
	if sub.ReviewMessageID != nil {
		if err := u.poster.DeleteMessage(ctx, contest.ReviewChannelID, *sub.ReviewMessageID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Review message cleanup failed")
			warnings = append(warnings, model.Warning{Stage: "delete_review_message", Message: err.Error()})
		}
	}
	return warnings
}

func (u *submissionUsecase) appendAudit(ctx context.Context, userID, action string, details map[string]interface{}) {
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

func (u *submissionUsecase) storageFailure(op string, err error) *model.Rejection {
	logger.GetLogger().WithField("error", err).Error("Storage failure while " + op)
	return model.Reject(model.RejectStorageFailure, "storage failure while %s", op)
}
