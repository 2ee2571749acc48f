package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music-contest/domain/model"
)

type voteFixture struct {
	contests    *fakeContests
	submissions *fakeSubmissions
	votes       *fakeVotes
	audit       *fakeAudit
	usecase     IVoteUsecase
}

func newVoteFixture(t *testing.T, status model.ContestStatus) (*voteFixture, int64) {
	t.Helper()

	contest := activeContest()
	contest.Status = status
	f := &voteFixture{
		contests:    newFakeContests(contest),
		submissions: newFakeSubmissions(),
		votes:       newFakeVotes(),
		audit:       &fakeAudit{},
	}
	f.usecase = NewVoteUsecase(f.contests, f.submissions, f.votes, f.audit)

	id, err := f.submissions.Insert(context.Background(), &model.Submission{
		ContestID: contest.ContestID,
		UserID:    "author-1",
		UserName:  "Author One",
		SongName:  "My Track",
		URL:       "https://suno.com/song/abc",
		Platform:  "Suno",
	}, 5)
	require.NoError(t, err)
	return f, id
}

func TestVoteAdd(t *testing.T) {
	f, id := newVoteFixture(t, model.ContestStatusVoting)
	ctx := context.Background()

	require.NoError(t, f.usecase.Add(ctx, "voter-1", id))
	assert.Equal(t, []string{"add_vote"}, f.audit.actions())

	err := f.usecase.Add(ctx, "voter-1", id)
	assert.Equal(t, model.RejectDuplicateVote, rejectionKind(t, err))

	// A second voter is unaffected by the first voter's vote.
	assert.NoError(t, f.usecase.Add(ctx, "voter-2", id))
}

func TestVoteRemove(t *testing.T) {
	f, id := newVoteFixture(t, model.ContestStatusVoting)
	ctx := context.Background()

	require.NoError(t, f.usecase.Add(ctx, "voter-1", id))
	require.NoError(t, f.usecase.Remove(ctx, "voter-1", id))

	err := f.usecase.Remove(ctx, "voter-1", id)
	assert.Equal(t, model.RejectSubmissionNotFound, rejectionKind(t, err))
}

func TestVoteRequiresVotingStatus(t *testing.T) {
	for _, status := range []model.ContestStatus{
		model.ContestStatusDraft,
		model.ContestStatusActive,
		model.ContestStatusClosed,
	} {
		f, id := newVoteFixture(t, status)

		err := f.usecase.Add(context.Background(), "voter-1", id)
		assert.Equal(t, model.RejectContestClosed, rejectionKind(t, err), string(status))
	}
}

func TestVoteUnknownSubmission(t *testing.T) {
	f, _ := newVoteFixture(t, model.ContestStatusVoting)

	err := f.usecase.Add(context.Background(), "voter-1", 999)
	assert.Equal(t, model.RejectSubmissionNotFound, rejectionKind(t, err))
}
