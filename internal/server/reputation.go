package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/reputation"
	"trustrace/internal/domain/value"
	"trustrace/pkg/httpx/reply"
	"trustrace/pkg/httpx/req"
	"trustrace/pkg/rest"
)

type profileService interface {
	Profile(ctx context.Context, address value.Address) (entity.Profile, error)
	Refresh(ctx context.Context, address value.Address) (entity.Profile, error)
	Activity(ctx context.Context, address value.Address) (entity.Activity, error)
}

type previewService interface {
	Preview(votes []reputation.Vote) (entity.SubmissionResults, error)
}

type ReputationServer struct {
	profileService profileService
	previewService previewService
}

func NewReputationServer(profileService profileService, previewService previewService) ReputationServer {
	return ReputationServer{
		profileService: profileService,
		previewService: previewService,
	}
}

func (s ReputationServer) getV1Tiers(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, lo.Map(reputation.Tiers(), func(t reputation.Tier, _ int) rest.Tier {
		return newRESTTier(t)
	}))

	return nil
}

func (s ReputationServer) getV1Reputation(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address, err := parseAddress(chi.URLParam(r, "address"))
	if err != nil {
		return err
	}

	lookup := s.profileService.Profile
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		lookup = s.profileService.Refresh
	}

	profile, err := lookup(ctx, address)
	if err != nil {
		return fmt.Errorf("profileService.Profile: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTProfile(profile))

	return nil
}

func (s ReputationServer) getV1ReputationActivity(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address, err := parseAddress(chi.URLParam(r, "address"))
	if err != nil {
		return err
	}

	activity, err := s.profileService.Activity(ctx, address)
	if err != nil {
		return fmt.Errorf("profileService.Activity: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Activity{
		Address:         activity.Address,
		VouchesReceived: activity.VouchesReceived,
		VouchesGiven:    activity.VouchesGiven,
		Attestations:    activity.Attestations,
	})

	return nil
}

func (s ReputationServer) postV1VotesPreview(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PreviewVotesRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	results, err := s.previewService.Preview(newDomainVotes(request.Votes))
	if err != nil {
		return fmt.Errorf("previewService.Preview: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTResults(results))

	return nil
}
