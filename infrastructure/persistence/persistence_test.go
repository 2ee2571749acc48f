package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"music-contest/domain/model"
)

// newTestDB opens a fresh migrated database backed by a temp file.
func newTestDB(t *testing.T) *testStore {
	t.Helper()

	db, err := NewSqliteDb(filepath.Join(t.TempDir(), "contests.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	return &testStore{
		contests:    NewContestRepository(db),
		submissions: NewSubmissionRepository(db),
		votes:       NewVoteRepository(db),
		audit:       NewAuditRepository(db),
		stats:       NewStatsRepository(db),
		rateLimits:  NewRateLimitRepository(db),
		db:          db,
	}
}

type testStore struct {
	contests    *ContestRepository
	submissions *SubmissionRepository
	votes       *VoteRepository
	audit       *AuditRepository
	stats       *StatsRepository
	rateLimits  *RateLimitRepository
	db          interface{ Close() error }
}

func (s *testStore) mustCreateContest(t *testing.T, contestID string, limit int) *model.Contest {
	t.Helper()
	contest := &model.Contest{
		ContestID:       contestID,
		PublicChannelID: "public-" + contestID,
		ReviewChannelID: "review-" + contestID,
		MaxSubmissions:  limit,
		Status:          model.ContestStatusActive,
		CreatedBy:       "admin-1",
	}
	require.NoError(t, s.contests.Create(context.Background(), contest))
	return contest
}

func (s *testStore) mustSubmit(t *testing.T, contestID, userID, url string, limit int) int64 {
	t.Helper()
	id, err := s.submissions.Insert(context.Background(), &model.Submission{
		ContestID: contestID,
		UserID:    userID,
		UserName:  "name-" + userID,
		SongName:  "Song " + url,
		Platform:  "Suno",
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}, limit)
	require.NoError(t, err)
	return id
}
