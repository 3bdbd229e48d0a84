package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/service/voting"
	"trustrace/internal/domain/value"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/httpx/reply"
	"trustrace/pkg/httpx/req"
	"trustrace/pkg/rest"
)

type votingService interface {
	Cast(ctx context.Context, in voting.CastInput) (entity.Vote, error)
	Results(ctx context.Context, submissionID string) (entity.SubmissionResults, error)
	VotesByVoter(ctx context.Context, contestID string, voter value.Address) (map[string]entity.Vote, error)
}

type VotingServer struct {
	votingService votingService
}

func NewVotingServer(votingService votingService) VotingServer {
	return VotingServer{
		votingService: votingService,
	}
}

func (s VotingServer) postV1SubmissionVotes(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, errcodes.InvalidSubmissionID)
	if err != nil {
		return err
	}

	var request rest.CastVoteRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	voter, err := parseAddress(request.Voter)
	if err != nil {
		return err
	}

	vote, err := s.votingService.Cast(ctx, voting.CastInput{
		SubmissionID: id,
		Voter:        voter,
		Amount:       request.Amount,
	})
	if err != nil {
		return fmt.Errorf("votingService.Cast: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTVote(vote))

	return nil
}

func (s VotingServer) getV1SubmissionResults(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, errcodes.InvalidSubmissionID)
	if err != nil {
		return err
	}

	results, err := s.votingService.Results(ctx, id)
	if err != nil {
		return fmt.Errorf("votingService.Results: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTResults(results))

	return nil
}

// getV1ContestVotes returns the votes of ?voter= in a contest keyed by
// submission id.
func (s VotingServer) getV1ContestVotes(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, errcodes.InvalidContestID)
	if err != nil {
		return err
	}

	voter, err := parseAddress(r.URL.Query().Get("voter"))
	if err != nil {
		return err
	}

	votes, err := s.votingService.VotesByVoter(ctx, id, voter)
	if err != nil {
		return fmt.Errorf("votingService.VotesByVoter: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lo.MapValues(votes, func(v entity.Vote, _ string) rest.Vote {
		return newRESTVote(v)
	}))

	return nil
}
