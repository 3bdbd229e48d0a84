package voting

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rs/xid"
	"github.com/samber/lo"

	"trustrace/internal/config"
	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/reputation"
	"trustrace/internal/domain/value"
	"trustrace/internal/metrics"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/logx"
)

const maxRecountAttempts = 3

type ContestRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Contest, error)
}

type SubmissionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	// UpdateTally fails with TallyOutdated when the stored vote count
	// differs from tally.VoteCount.
	UpdateTally(ctx context.Context, id string, tally entity.Tally) error
}

type VoteRepository interface {
	Create(ctx context.Context, vote *entity.Vote) error
	Exists(ctx context.Context, submissionID, voter string) (bool, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]entity.Vote, error)
	ListByVoterInContest(ctx context.Context, contestID, voter string) ([]entity.Vote, error)
}

type ProfileProvider interface {
	Profile(ctx context.Context, address value.Address) (entity.Profile, error)
}

// RecalculationQueue schedules an asynchronous recount of a submission.
type RecalculationQueue interface {
	EnqueueRecalculation(ctx context.Context, submissionID string) error
}

type Notifier interface {
	NotifyHighTrust(ctx context.Context, submission entity.Submission, results entity.SubmissionResults) error
}

type CastInput struct {
	SubmissionID string
	Voter        value.Address
	Amount       float64
}

type Service struct {
	contests    ContestRepository
	submissions SubmissionRepository
	votes       VoteRepository
	profiles    ProfileProvider
	queue       RecalculationQueue
	notifier    Notifier
	rules       config.Voting
	now         func() time.Time
}

func NewService(
	contests ContestRepository,
	submissions SubmissionRepository,
	votes VoteRepository,
	profiles ProfileProvider,
	queue RecalculationQueue,
	notifier Notifier,
	rules config.Voting,
) *Service {
	return &Service{
		contests:    contests,
		submissions: submissions,
		votes:       votes,
		profiles:    profiles,
		queue:       queue,
		notifier:    notifier,
		rules:       rules,
		now:         time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Cast records a vote weighted by the voter's current Ethos score.
func (s *Service) Cast(ctx context.Context, in CastInput) (entity.Vote, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return entity.Vote{}, err
	}

	submission, err := s.submissions.GetByID(ctx, in.SubmissionID)
	if err != nil {
		return entity.Vote{}, fmt.Errorf("submissions.GetByID: %w", err)
	}

	contest, err := s.contests.GetByID(ctx, submission.ContestID)
	if err != nil {
		return entity.Vote{}, fmt.Errorf("contests.GetByID: %w", err)
	}

	now := s.now().UTC()

	switch contest.PhaseAt(now) {
	case entity.PhaseSubmission:
		return entity.Vote{}, domain.NewError(errcodes.VotingNotStarted, "voting opens after the submission deadline")
	case entity.PhaseEnded:
		return entity.Vote{}, domain.NewError(errcodes.VotingClosed, "voting is closed")
	case entity.PhaseVoting:
	}

	voter, err := s.profiles.Profile(ctx, in.Voter)
	if err != nil {
		return entity.Vote{}, fmt.Errorf("profiles.Profile: %w", err)
	}

	exists, err := s.votes.Exists(ctx, submission.ID, voter.Address)
	if err != nil {
		return entity.Vote{}, fmt.Errorf("votes.Exists: %w", err)
	}

	if exists {
		return entity.Vote{}, domain.NewError(errcodes.AlreadyVoted, "already voted for this submission")
	}

	vote := entity.Vote{
		ID:                xid.New().String(),
		ContestID:         contest.ID,
		SubmissionID:      submission.ID,
		Voter:             voter.Address,
		Amount:            in.Amount,
		CredibilityWeight: voter.Score,
		VotingPower:       voter.Tier.VotePower,
		CreatedAt:         now,
	}

	if err := s.votes.Create(ctx, &vote); err != nil {
		return entity.Vote{}, fmt.Errorf("votes.Create: %w", err)
	}

	metrics.VotesCast.WithLabelValues(voter.Tier.Name.String()).Inc()

	logger(ctx).Info("vote cast",
		slog.String("submission_id", vote.SubmissionID),
		slog.String("voter", vote.Voter),
		slog.Float64("amount", vote.Amount),
		slog.Float64("voting_power", vote.VotingPower),
	)

	// The vote is stored; a missed recount is repaired by the next vote or
	// by the recalculate command.
	if err := s.queue.EnqueueRecalculation(ctx, submission.ID); err != nil {
		logger(ctx).Warn("enqueue recalculation",
			slog.String("submission_id", submission.ID),
			logx.Error(err),
		)
	}

	return vote, nil
}

// Results aggregates the stored votes of a submission.
func (s *Service) Results(ctx context.Context, submissionID string) (entity.SubmissionResults, error) {
	if _, err := s.submissions.GetByID(ctx, submissionID); err != nil {
		return entity.SubmissionResults{}, fmt.Errorf("submissions.GetByID: %w", err)
	}

	return s.summarizeStored(ctx, submissionID)
}

// Recalculate recounts a submission from its votes and stores the tally.
// Crossing into High Trust triggers a notification.
func (s *Service) Recalculate(ctx context.Context, submissionID string) (entity.SubmissionResults, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return entity.SubmissionResults{}, fmt.Errorf("submissions.GetByID: %w", err)
	}

	results, err := s.storeTally(ctx, submissionID)
	if err != nil {
		return entity.SubmissionResults{}, err
	}

	metrics.SubmissionTrustConfidence.Observe(float64(results.TrustConfidence))

	before := reputation.TrustConfidenceLabel(submission.TrustConfidence).Level
	if before != reputation.HighTrust && results.Label.Level == reputation.HighTrust {
		if err := s.notifier.NotifyHighTrust(ctx, *submission, results); err != nil {
			logger(ctx).Warn("notify high trust",
				slog.String("submission_id", submissionID),
				logx.Error(err),
			)
		}
	}

	logger(ctx).Debug("submission recalculated",
		slog.String("submission_id", submissionID),
		slog.Float64("weighted_votes", results.WeightedVotes),
		slog.Int("trust_confidence", results.TrustConfidence),
	)

	return results, nil
}

// storeTally recounts until no vote lands between reading the votes and
// writing the tally.
func (s *Service) storeTally(ctx context.Context, submissionID string) (entity.SubmissionResults, error) {
	var err error

	for range maxRecountAttempts {
		var results entity.SubmissionResults

		results, err = s.summarizeStored(ctx, submissionID)
		if err != nil {
			return entity.SubmissionResults{}, err
		}

		err = s.submissions.UpdateTally(ctx, submissionID, entity.Tally{
			VoteCount:       results.VoteCount,
			WeightedVotes:   results.WeightedVotes,
			TrustConfidence: results.TrustConfidence,
		})
		if err == nil {
			return results, nil
		}

		if !domain.HasCode(err, errcodes.TallyOutdated) {
			return entity.SubmissionResults{}, fmt.Errorf("submissions.UpdateTally: %w", err)
		}

		logger(ctx).Debug("votes changed during recount", slog.String("submission_id", submissionID))
	}

	return entity.SubmissionResults{}, fmt.Errorf("submissions.UpdateTally: %w", err)
}

// VotesByVoter returns the voter's votes in a contest keyed by submission id.
func (s *Service) VotesByVoter(ctx context.Context, contestID string, voter value.Address) (map[string]entity.Vote, error) {
	if _, err := s.contests.GetByID(ctx, contestID); err != nil {
		return nil, fmt.Errorf("contests.GetByID: %w", err)
	}

	p, err := s.profiles.Profile(ctx, voter)
	if err != nil {
		return nil, fmt.Errorf("profiles.Profile: %w", err)
	}

	votes, err := s.votes.ListByVoterInContest(ctx, contestID, p.Address)
	if err != nil {
		return nil, fmt.Errorf("votes.ListByVoterInContest: %w", err)
	}

	return lo.KeyBy(votes, func(v entity.Vote) string { return v.SubmissionID }), nil
}

// Preview aggregates arbitrary votes without touching storage.
func (s *Service) Preview(votes []reputation.Vote) (entity.SubmissionResults, error) {
	if err := reputation.ValidateVotes(votes); err != nil {
		return entity.SubmissionResults{}, domain.WrapError(err, errcodes.InvalidVoteAmount, "invalid vote amount")
	}

	return Summarize("", votes), nil
}

func (s *Service) summarizeStored(ctx context.Context, submissionID string) (entity.SubmissionResults, error) {
	votes, err := s.votes.ListBySubmission(ctx, submissionID)
	if err != nil {
		return entity.SubmissionResults{}, fmt.Errorf("votes.ListBySubmission: %w", err)
	}

	return Summarize(submissionID, lo.Map(votes, func(v entity.Vote, _ int) reputation.Vote {
		return v.Reputation()
	})), nil
}

// Summarize computes the credibility-weighted outcome of a set of votes.
func Summarize(submissionID string, votes []reputation.Vote) entity.SubmissionResults {
	confidence := reputation.TrustConfidence(votes)

	return entity.SubmissionResults{
		SubmissionID:    submissionID,
		VoteCount:       len(votes),
		RawVotes:        lo.SumBy(votes, func(v reputation.Vote) float64 { return v.Amount }),
		WeightedVotes:   reputation.WeightedVotes(votes),
		TrustConfidence: confidence,
		Label:           reputation.TrustConfidenceLabel(confidence),
		Breakdown:       reputation.VoteBreakdownByTier(votes),
	}
}

func (s *Service) validateAmount(amount float64) error {
	if math.IsNaN(amount) || amount < s.rules.MinVoteAmount || amount > s.rules.MaxVoteAmount {
		return domain.NewError(
			errcodes.InvalidVoteAmount,
			fmt.Sprintf("vote amount must be within [%v, %v]", s.rules.MinVoteAmount, s.rules.MaxVoteAmount),
		)
	}

	return nil
}
