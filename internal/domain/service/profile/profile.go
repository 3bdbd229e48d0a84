package profile

import (
	"context"
	"fmt"
	"log/slog"

	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/reputation"
	"trustrace/internal/domain/value"
)

type EthosClient interface {
	ResolveENS(ctx context.Context, name string) (string, error)
	CredibilityScore(ctx context.Context, address string) (int, error)
	RefreshScore(ctx context.Context, address string) (int, error)
	Activity(ctx context.Context, addressOrENS string) (entity.Activity, error)
}

type Service struct {
	ethos EthosClient
}

func NewService(ethos EthosClient) *Service {
	return &Service{
		ethos: ethos,
	}
}

// Profile resolves the address and derives its standing from the Ethos score.
// The returned profile always carries a hex address.
func (s *Service) Profile(ctx context.Context, address value.Address) (entity.Profile, error) {
	return s.profile(ctx, address, s.ethos.CredibilityScore)
}

// Refresh is Profile bypassing the score cache.
func (s *Service) Refresh(ctx context.Context, address value.Address) (entity.Profile, error) {
	return s.profile(ctx, address, s.ethos.RefreshScore)
}

// Activity returns the vouches and attestations recorded for the address.
func (s *Service) Activity(ctx context.Context, address value.Address) (entity.Activity, error) {
	activity, err := s.ethos.Activity(ctx, address.String())
	if err != nil {
		return entity.Activity{}, fmt.Errorf("ethos.Activity: %w", err)
	}

	return activity, nil
}

func (s *Service) profile(
	ctx context.Context,
	address value.Address,
	score func(context.Context, string) (int, error),
) (entity.Profile, error) {
	resolved := address.String()

	if address.IsENS() {
		var err error

		resolved, err = s.ethos.ResolveENS(ctx, resolved)
		if err != nil {
			return entity.Profile{}, fmt.Errorf("ethos.ResolveENS: %w", err)
		}

		logger(ctx).Debug("ens resolved", slog.String("name", address.String()), slog.String("address", resolved))
	}

	credibility, err := score(ctx, resolved)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("ethos.CredibilityScore: %w", err)
	}

	return Build(resolved, credibility), nil
}

// Build derives a profile from an already known score.
func Build(address string, score int) entity.Profile {
	s := float64(score)

	return entity.Profile{
		Address:          address,
		Score:            score,
		Tier:             reputation.TierFromScore(s),
		Progress:         reputation.ProgressToNextTier(s),
		CredibilityLevel: reputation.CredibilityLevel(s),
		CanCreateContest: reputation.CanCreateContest(s),
		CanSubmit:        reputation.CanSubmit(s),
		IsCurator:        reputation.IsCurator(s),
	}
}
