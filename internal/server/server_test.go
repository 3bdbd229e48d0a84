package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"trustrace/internal/config"
	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/service/contest"
	"trustrace/internal/domain/service/profile"
	"trustrace/internal/domain/service/voting"
	"trustrace/internal/domain/value"
	"trustrace/internal/server"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/rest"
	"trustrace/pkg/tests"
)

const (
	creatorAddress = "0x1111111111111111111111111111111111111111"
	voterAddress   = "0x2222222222222222222222222222222222222222"
)

type fakeProfiles map[value.Address]int

func (f fakeProfiles) Profile(_ context.Context, address value.Address) (entity.Profile, error) {
	score, ok := f[address]
	if !ok {
		return entity.Profile{}, domain.NewError(errcodes.EthosUnavailable, "ethos request failed")
	}

	return profile.Build(address.String(), score), nil
}

func (f fakeProfiles) Refresh(ctx context.Context, address value.Address) (entity.Profile, error) {
	return f.Profile(ctx, address)
}

func (f fakeProfiles) Activity(_ context.Context, address value.Address) (entity.Activity, error) {
	if _, ok := f[address]; !ok {
		return entity.Activity{}, domain.NewError(errcodes.EthosUnavailable, "ethos request failed")
	}

	return entity.Activity{Address: address.String(), VouchesReceived: 2, VouchesGiven: 1}, nil
}

type fakeContests struct {
	created  contest.CreateInput
	contests map[string]entity.Contest
	err      error
}

func (f *fakeContests) Create(_ context.Context, in contest.CreateInput) (entity.Contest, error) {
	if f.err != nil {
		return entity.Contest{}, f.err
	}

	f.created = in

	now := time.Now()

	return entity.Contest{
		ID:                 "contest-1",
		Title:              in.Title,
		Creator:            in.Creator.String(),
		SubmissionDeadline: now.Add(in.SubmissionDuration),
		VotingDeadline:     now.Add(in.SubmissionDuration + in.VotingDuration),
		RewardsPool:        in.RewardsPool,
		IsActive:           true,
		CreatedAt:          now,
	}, nil
}

func (f *fakeContests) Get(_ context.Context, id string) (entity.Contest, error) {
	c, ok := f.contests[id]
	if !ok {
		return entity.Contest{}, domain.NewError(errcodes.ContestNotFound, "contest not found")
	}

	return c, nil
}

func (f *fakeContests) List(_ context.Context, _, _ int) ([]entity.Contest, error) {
	result := make([]entity.Contest, 0, len(f.contests))
	for _, c := range f.contests {
		result = append(result, c)
	}

	return result, nil
}

func (f *fakeContests) Submit(_ context.Context, in contest.SubmitInput) (entity.Submission, error) {
	if _, ok := f.contests[in.ContestID]; !ok {
		return entity.Submission{}, domain.NewError(errcodes.ContestNotFound, "contest not found")
	}

	return entity.Submission{
		ID:         "sub-1",
		ContestID:  in.ContestID,
		Submitter:  in.Submitter.String(),
		ContentURI: in.ContentURI,
		Title:      in.Title,
	}, nil
}

func (f *fakeContests) Submissions(_ context.Context, _ string) ([]entity.Submission, error) {
	return []entity.Submission{{ID: "sub-1", ContestID: "contest-1"}}, nil
}

type fakeVoting struct {
	votes map[string]entity.Vote
}

func (f *fakeVoting) Cast(_ context.Context, in voting.CastInput) (entity.Vote, error) {
	if _, ok := f.votes[in.SubmissionID]; ok {
		return entity.Vote{}, domain.NewError(errcodes.AlreadyVoted, "already voted for this submission")
	}

	vote := entity.Vote{
		ID:                "vote-1",
		ContestID:         "contest-1",
		SubmissionID:      in.SubmissionID,
		Voter:             in.Voter.String(),
		Amount:            in.Amount,
		CredibilityWeight: 900,
		VotingPower:       1,
	}
	f.votes[in.SubmissionID] = vote

	return vote, nil
}

func (f *fakeVoting) Results(_ context.Context, submissionID string) (entity.SubmissionResults, error) {
	return voting.Summarize(submissionID, nil), nil
}

func (f *fakeVoting) VotesByVoter(_ context.Context, _ string, _ value.Address) (map[string]entity.Vote, error) {
	return f.votes, nil
}

type fixture struct {
	client   tests.APIClient
	contests *fakeContests
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	contests := &fakeContests{contests: map[string]entity.Contest{
		"contest-1": {ID: "contest-1", IsActive: true, VotingDeadline: time.Now().Add(time.Hour)},
	}}
	profiles := fakeProfiles{creatorAddress: 1500, voterAddress: 900}

	srv := server.NewServer(
		server.NewReputationServer(profiles, voting.NewService(nil, nil, nil, nil, nil, nil, config.Voting{})),
		server.NewContestServer(contests),
		server.NewVotingServer(&fakeVoting{votes: map[string]entity.Vote{}}),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	return &fixture{
		client:   tests.NewAPIClient(httpServer.URL, nil),
		contests: contests,
	}
}

func TestGetTiers(t *testing.T) {
	rq := require.New(t)
	f := newFixture(t)

	var tiers []rest.Tier

	resp, err := f.client.Get(context.Background(), "/v1/tiers", nil, &tiers, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(tiers, 4)
	rq.Equal("observer", tiers[0].Name)
	rq.InDelta(799, *tiers[0].MaxScore, 0)
	rq.Equal("curator", tiers[3].Name)
	rq.Nil(tiers[3].MaxScore)
	rq.NotEmpty(tiers[3].Permissions)
}

func TestGetReputation(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	var p rest.Profile

	resp, err := f.client.Get(ctx, "/v1/reputation/"+creatorAddress, nil, &p, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(1500, p.Score)
	rq.Equal("creator", p.Tier.Name)
	rq.Equal("curator", *p.Progress.NextTier)
	rq.True(p.CanCreateContest)

	testCases := []struct {
		address string
		status  int
		code    rest.ErrorCode
	}{
		{address: "not-an-address", status: http.StatusBadRequest, code: "InvalidAddress"},
		{address: "nobody.eth", status: http.StatusBadGateway, code: "EthosUnavailable"},
	}

	for _, tc := range testCases {
		var errResp rest.Error

		resp, err = f.client.Get(ctx, "/v1/reputation/"+tc.address, nil, nil, &errResp)
		rq.NoError(err)
		rq.Equal(tc.status, resp.StatusCode)
		rq.Equal(tc.code, errResp.Code)
	}
}

func TestGetReputationActivity(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	var activity rest.Activity

	resp, err := f.client.Get(ctx, "/v1/reputation/"+creatorAddress+"/activity", nil, &activity, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(creatorAddress, activity.Address)
	rq.Equal(2, activity.VouchesReceived)
	rq.Equal(1, activity.VouchesGiven)

	var errResp rest.Error

	resp, err = f.client.Get(ctx, "/v1/reputation/nobody.eth/activity", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadGateway, resp.StatusCode)
	rq.Equal(rest.ErrorCode("EthosUnavailable"), errResp.Code)
}

func TestPostVotesPreview(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	var results rest.SubmissionResults

	resp, err := f.client.Post(ctx, "/v1/votes/preview", nil, rest.PreviewVotesRequest{
		Votes: []rest.PreviewVote{
			{VoterScore: 2000, Amount: 1},
			{VoterScore: 0, Amount: 1},
		},
	}, &results, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.InDelta(3.5, results.WeightedVotes, 1e-9)
	rq.Equal(86, results.TrustConfidence)
	rq.Equal("high", results.Label.Level)
	rq.Len(results.Breakdown, 4)

	var errResp rest.Error

	resp, err = f.client.Post(ctx, "/v1/votes/preview", nil, rest.PreviewVotesRequest{
		Votes: []rest.PreviewVote{{VoterScore: 1000, Amount: -1}},
	}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidVoteAmount"), errResp.Code)

	resp, err = f.client.PostJSON(ctx, "/v1/votes/preview", nil, `{"votes":`, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestPostContests(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	request := rest.CreateContestRequest{
		Creator:            creatorAddress,
		Title:              "Best haiku",
		Prompt:             "Write a haiku",
		SubmissionDuration: 3600,
		VotingDuration:     7200,
		RewardsPool:        1,
	}

	var created rest.Contest

	resp, err := f.client.Post(ctx, "/v1/contests", nil, request, &created, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("contest-1", created.ID)
	rq.Equal("submission", created.Phase)
	rq.Equal(time.Hour, f.contests.created.SubmissionDuration)
	rq.Equal(2*time.Hour, f.contests.created.VotingDuration)

	f.contests.err = domain.NewError(errcodes.InsufficientCredibility, "creating contests requires a score of at least 1400")

	var errResp rest.Error

	resp, err = f.client.Post(ctx, "/v1/contests", nil, request, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusForbidden, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InsufficientCredibility"), errResp.Code)

	request.Title = ""

	resp, err = f.client.Post(ctx, "/v1/contests", nil, request, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestGetContests(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	var contests []rest.Contest

	resp, err := f.client.Get(ctx, "/v1/contests?limit=10", nil, &contests, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(contests, 1)
	rq.Equal("voting", contests[0].Phase)

	var errResp rest.Error

	resp, err = f.client.Get(ctx, "/v1/contests?limit=500", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidPaging"), errResp.Code)

	resp, err = f.client.Get(ctx, "/v1/contests/missing", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("ContestNotFound"), errResp.Code)
}

func TestSubmissionsAndVotes(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	var submission rest.Submission

	resp, err := f.client.Post(ctx, "/v1/contests/contest-1/submissions", nil, rest.CreateSubmissionRequest{
		Submitter:  voterAddress,
		ContentURI: "https://example.org/haiku",
		Title:      "Quiet ledger",
	}, &submission, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("sub-1", submission.ID)

	var submissions []rest.Submission

	resp, err = f.client.Get(ctx, "/v1/contests/contest-1/submissions", nil, &submissions, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(submissions, 1)

	var vote rest.Vote

	resp, err = f.client.Post(ctx, "/v1/submissions/sub-1/votes", nil, rest.CastVoteRequest{
		Voter:  voterAddress,
		Amount: 0.5,
	}, &vote, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal(voterAddress, vote.Voter)
	rq.InDelta(0.5, vote.Amount, 0)

	var errResp rest.Error

	resp, err = f.client.Post(ctx, "/v1/submissions/sub-1/votes", nil, rest.CastVoteRequest{
		Voter:  voterAddress,
		Amount: 0.5,
	}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusConflict, resp.StatusCode)
	rq.Equal(rest.ErrorCode("AlreadyVoted"), errResp.Code)

	var byVoter map[string]rest.Vote

	resp, err = f.client.Get(ctx, "/v1/contests/contest-1/votes?voter="+voterAddress, nil, &byVoter, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Contains(byVoter, "sub-1")

	var results rest.SubmissionResults

	resp, err = f.client.Get(ctx, "/v1/submissions/sub-1/results", nil, &results, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("sub-1", results.SubmissionID)
	rq.Equal("low", results.Label.Level)
}
