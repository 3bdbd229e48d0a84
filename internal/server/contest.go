package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"

	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/service/contest"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/httpx/reply"
	"trustrace/pkg/httpx/req"
	"trustrace/pkg/rest"
)

type contestService interface {
	Create(ctx context.Context, in contest.CreateInput) (entity.Contest, error)
	Get(ctx context.Context, id string) (entity.Contest, error)
	List(ctx context.Context, limit, offset int) ([]entity.Contest, error)
	Submit(ctx context.Context, in contest.SubmitInput) (entity.Submission, error)
	Submissions(ctx context.Context, contestID string) ([]entity.Submission, error)
}

type ContestServer struct {
	contestService contestService
}

func NewContestServer(contestService contestService) ContestServer {
	return ContestServer{
		contestService: contestService,
	}
}

func (s ContestServer) getV1Contests(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := paging(r)
	if err != nil {
		return err
	}

	contests, err := s.contestService.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("contestService.List: %w", err)
	}

	now := time.Now()

	reply.JSON(ctx, w, http.StatusOK, lo.Map(contests, func(c entity.Contest, _ int) rest.Contest {
		return newRESTContest(c, now)
	}))

	return nil
}

func (s ContestServer) postV1Contests(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateContestRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	creator, err := parseAddress(request.Creator)
	if err != nil {
		return err
	}

	created, err := s.contestService.Create(ctx, contest.CreateInput{
		Creator:             creator,
		Title:               request.Title,
		Prompt:              request.Prompt,
		Description:         request.Description,
		SubmissionDuration:  time.Duration(request.SubmissionDuration) * time.Second,
		VotingDuration:      time.Duration(request.VotingDuration) * time.Second,
		RewardsPool:         request.RewardsPool,
		MinCredibilityScore: request.MinCredibilityScore,
	})
	if err != nil {
		return fmt.Errorf("contestService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTContest(created, time.Now()))

	return nil
}

func (s ContestServer) getV1Contest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, errcodes.InvalidContestID)
	if err != nil {
		return err
	}

	c, err := s.contestService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("contestService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTContest(c, time.Now()))

	return nil
}

func (s ContestServer) getV1ContestSubmissions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, errcodes.InvalidContestID)
	if err != nil {
		return err
	}

	submissions, err := s.contestService.Submissions(ctx, id)
	if err != nil {
		return fmt.Errorf("contestService.Submissions: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lo.Map(submissions, func(sub entity.Submission, _ int) rest.Submission {
		return newRESTSubmission(sub)
	}))

	return nil
}

func (s ContestServer) postV1ContestSubmissions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, errcodes.InvalidContestID)
	if err != nil {
		return err
	}

	var request rest.CreateSubmissionRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	submitter, err := parseAddress(request.Submitter)
	if err != nil {
		return err
	}

	submission, err := s.contestService.Submit(ctx, contest.SubmitInput{
		ContestID:   id,
		Submitter:   submitter,
		ContentURI:  request.ContentURI,
		Title:       request.Title,
		Description: request.Description,
	})
	if err != nil {
		return fmt.Errorf("contestService.Submit: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTSubmission(submission))

	return nil
}
