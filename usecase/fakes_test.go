package usecase

import (
	"context"
	"errors"
	"net/url"
	"time"

	"music-contest/domain/model"
	"music-contest/domain/repository"
)

type fakeContests struct {
	contests map[string]*model.Contest
	err      error
}

func newFakeContests(contests ...*model.Contest) *fakeContests {
	f := &fakeContests{contests: make(map[string]*model.Contest)}
	for _, c := range contests {
		f.contests[c.ContestID] = c
	}
	return f
}

func (f *fakeContests) Create(_ context.Context, c *model.Contest) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.contests[c.ContestID]; ok {
		return repository.ErrDuplicateContest
	}
	f.contests[c.ContestID] = c
	return nil
}

func (f *fakeContests) GetByID(_ context.Context, contestID string) (*model.Contest, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.contests[contestID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeContests) Update(_ context.Context, c *model.Contest) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.contests[c.ContestID]; !ok {
		return repository.ErrNotFound
	}
	f.contests[c.ContestID] = c
	return nil
}

func (f *fakeContests) Delete(_ context.Context, contestID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.contests[contestID]; !ok {
		return 0, repository.ErrNotFound
	}
	delete(f.contests, contestID)
	return 2, nil
}

type fakeSubmissions struct {
	nextID     int64
	byID       map[int64]*model.Submission
	insertErr  error
	messageIDs map[int64][2]*string
}

func newFakeSubmissions() *fakeSubmissions {
	return &fakeSubmissions{
		nextID:     1,
		byID:       make(map[int64]*model.Submission),
		messageIDs: make(map[int64][2]*string),
	}
}

func (f *fakeSubmissions) Insert(_ context.Context, sub *model.Submission, limit int) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	var count int
	for _, existing := range f.byID {
		if existing.ContestID == sub.ContestID && existing.UserID == sub.UserID {
			count++
		}
		if existing.ContestID == sub.ContestID && existing.UserID == sub.UserID && existing.URL == sub.URL {
			return 0, repository.ErrDuplicateSubmission
		}
	}
	if count >= limit {
		return 0, repository.ErrLimitReached
	}
	id := f.nextID
	f.nextID++
	stored := *sub
	stored.SubmissionID = id
	f.byID[id] = &stored
	return id, nil
}

func (f *fakeSubmissions) GetByID(_ context.Context, id int64) (*model.Submission, error) {
	sub, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return sub, nil
}

func (f *fakeSubmissions) SetMessageIDs(_ context.Context, id int64, publicMsgID, reviewMsgID *string) error {
	f.messageIDs[id] = [2]*string{publicMsgID, reviewMsgID}
	return nil
}

func (f *fakeSubmissions) ListByContest(_ context.Context, contestID string) ([]*model.Submission, error) {
	var subs []*model.Submission
	for _, sub := range f.byID {
		if sub.ContestID == contestID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (f *fakeSubmissions) CountForUser(_ context.Context, contestID, userID string) (int64, error) {
	var count int64
	for _, sub := range f.byID {
		if sub.ContestID == contestID && sub.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubmissions) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeVotes struct {
	votes map[int64]map[string]bool
}

func newFakeVotes() *fakeVotes {
	return &fakeVotes{votes: make(map[int64]map[string]bool)}
}

func (f *fakeVotes) Add(_ context.Context, submissionID int64, userID string) error {
	if f.votes[submissionID] == nil {
		f.votes[submissionID] = make(map[string]bool)
	}
	if f.votes[submissionID][userID] {
		return repository.ErrDuplicateVote
	}
	f.votes[submissionID][userID] = true
	return nil
}

func (f *fakeVotes) Remove(_ context.Context, submissionID int64, userID string) error {
	if !f.votes[submissionID][userID] {
		return repository.ErrNotFound
	}
	delete(f.votes[submissionID], userID)
	return nil
}

type fakeStats struct {
	total        int64
	participants int64
	platforms    map[string]int64
	timeline     []model.TimelineBucket
	leaderboard  []model.LeaderboardEntry
	votes        int64
	voters       int64
	err          error
}

func (f *fakeStats) TotalSubmissions(context.Context, string) (int64, error) {
	return f.total, f.err
}

func (f *fakeStats) UniqueParticipants(context.Context, string) (int64, error) {
	return f.participants, f.err
}

func (f *fakeStats) PlatformBreakdown(context.Context, string) (map[string]int64, error) {
	return f.platforms, f.err
}

func (f *fakeStats) Timeline(context.Context, string) ([]model.TimelineBucket, error) {
	return f.timeline, f.err
}

func (f *fakeStats) Leaderboard(context.Context, string) ([]model.LeaderboardEntry, error) {
	return f.leaderboard, f.err
}

func (f *fakeStats) VoteTotals(context.Context, string) (int64, int64, error) {
	return f.votes, f.voters, f.err
}

type fakeAudit struct {
	entries []*model.AuditLogEntry
}

func (f *fakeAudit) Append(_ context.Context, entry *model.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAudit) actions() []string {
	var actions []string
	for _, e := range f.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

// fakeHandler pretends every URL on its host is a valid track.
type fakeHandler struct {
	name     string
	host     string
	metadata *model.TrackMetadata
	err      error
}

func (h *fakeHandler) Name() string { return h.name }

func (h *fakeHandler) Matches(u *url.URL) bool { return u.Hostname() == h.host }

func (h *fakeHandler) GetMetadata(_ context.Context, _ string) (*model.TrackMetadata, error) {
	if h.err != nil {
		return nil, h.err
	}
	return h.metadata, nil
}

type fakeRegistry struct {
	handlers []repository.IPlatformHandler
}

func (r *fakeRegistry) Resolve(rawURL string) repository.IPlatformHandler {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	for _, h := range r.handlers {
		if h.Matches(u) {
			return h
		}
	}
	return nil
}

func (r *fakeRegistry) Names() []string {
	var names []string
	for _, h := range r.handlers {
		names = append(names, h.Name())
	}
	return names
}

type fakePoster struct {
	reviewErr error
	publicErr error
	deleted   []string
	deleteErr error
}

func (p *fakePoster) PostReview(_ context.Context, _ string, _ *model.ReviewPayload) (string, error) {
	if p.reviewErr != nil {
		return "", p.reviewErr
	}
	return "review-msg-1", nil
}

func (p *fakePoster) PostPublic(_ context.Context, _ string, _ *model.PublicPayload) (string, error) {
	if p.publicErr != nil {
		return "", p.publicErr
	}
	return "public-msg-1", nil
}

func (p *fakePoster) DeleteMessage(_ context.Context, _, messageID string) error {
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.deleted = append(p.deleted, messageID)
	return nil
}

type fakeLimiter struct {
	allowed bool
	wait    time.Duration
}

func (l *fakeLimiter) IsAllowed(string) bool              { return l.allowed }
func (l *fakeLimiter) RemainingTime(string) time.Duration { return l.wait }
func (l *fakeLimiter) ResetUser(string)                   {}
func (l *fakeLimiter) ResetAll()                          {}

var errBoom = errors.New("boom")
