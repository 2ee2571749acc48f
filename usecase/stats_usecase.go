package usecase

import (
	"context"
	"errors"

	"music-contest/domain/dto"
	"music-contest/domain/model"
	"music-contest/domain/repository"
	"music-contest/infrastructure/logger"
)

type IStatsUsecase interface {
	ContestStats(ctx context.Context, contestID string) (*dto.ContestStatsResponse, error)
}

type statsUsecase struct {
	contests repository.IContest
	stats    repository.IStats
}

func NewStatsUsecase(contests repository.IContest, stats repository.IStats) IStatsUsecase {
	return &statsUsecase{contests: contests, stats: stats}
}

// ContestStats assembles the read-only snapshot. A contest with zero
// submissions yields zeros and empty collections, never an error. Vote
// figures only appear once the contest reaches voting or closed status.
func (u *statsUsecase) ContestStats(ctx context.Context, contestID string) (*dto.ContestStatsResponse, error) {
	contest, err := u.contests.GetByID(ctx, contestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Reject(model.RejectContestNotFound, "contest %q does not exist", contestID)
	}
	if err != nil {
		return nil, u.storageFailure("looking up contest", err)
	}

	total, err := u.stats.TotalSubmissions(ctx, contestID)
	if err != nil {
		return nil, u.storageFailure("counting submissions", err)
	}
	participants, err := u.stats.UniqueParticipants(ctx, contestID)
	if err != nil {
		return nil, u.storageFailure("counting participants", err)
	}
	platforms, err := u.stats.PlatformBreakdown(ctx, contestID)
	if err != nil {
		return nil, u.storageFailure("breaking down platforms", err)
	}
	timeline, err := u.stats.Timeline(ctx, contestID)
	if err != nil {
		return nil, u.storageFailure("building timeline", err)
	}

	resp := &dto.ContestStatsResponse{
		Contest:            contest,
		TotalSubmissions:   total,
		UniqueParticipants: participants,
		Platforms:          platforms,
		Timeline:           make([]dto.TimelinePoint, 0, len(timeline)),
	}
	for _, bucket := range timeline {
		resp.Timeline = append(resp.Timeline, dto.TimelinePoint{Day: bucket.Day, Count: bucket.Count})
	}

	if contest.Status == model.ContestStatusVoting || contest.Status == model.ContestStatusClosed {
		entries, err := u.stats.Leaderboard(ctx, contestID)
		if err != nil {
			return nil, u.storageFailure("building leaderboard", err)
		}
		for i, e := range entries {
			resp.Leaderboard = append(resp.Leaderboard, dto.LeaderboardRow{
				Rank:         i + 1,
				SubmissionID: e.SubmissionID,
				SongName:     e.SongName,
				UserName:     e.UserName,
				Platform:     e.Platform,
				URL:          e.URL,
				VoteCount:    e.VoteCount,
			})
		}

		votes, voters, err := u.stats.VoteTotals(ctx, contestID)
		if err != nil {
			return nil, u.storageFailure("counting votes", err)
		}
		resp.TotalVotes = votes
		resp.UniqueVoters = voters
	}

	return resp, nil
}

func (u *statsUsecase) storageFailure(op string, err error) *model.Rejection {
	logger.GetLogger().WithField("error", err).Error("Storage failure while " + op)
	return model.Reject(model.RejectStorageFailure, "storage failure while %s", op)
}
