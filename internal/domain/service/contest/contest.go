package contest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/xid"

	"trustrace/internal/config"
	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/reputation"
	"trustrace/internal/domain/value"
	"trustrace/pkg/contextx"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/logx"
)

type ContestRepository interface {
	Create(ctx context.Context, contest *entity.Contest) error
	GetByID(ctx context.Context, id string) (*entity.Contest, error)
	List(ctx context.Context, limit, offset int) ([]entity.Contest, error)
	UpdateStatus(ctx context.Context, id string, isActive bool) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	ListByContest(ctx context.Context, contestID string) ([]entity.Submission, error)
	ExistsForSubmitter(ctx context.Context, contestID, submitter string) (bool, error)
}

type ProfileProvider interface {
	Profile(ctx context.Context, address value.Address) (entity.Profile, error)
}

type CreateInput struct {
	Creator             value.Address
	Title               string
	Prompt              string
	Description         string
	SubmissionDuration  time.Duration
	VotingDuration      time.Duration
	RewardsPool         float64
	MinCredibilityScore int
}

type SubmitInput struct {
	ContestID   string
	Submitter   value.Address
	ContentURI  string
	Title       string
	Description string
}

type Service struct {
	contests    ContestRepository
	submissions SubmissionRepository
	profiles    ProfileProvider
	rules       config.Contest
	now         func() time.Time
}

func NewService(
	contests ContestRepository,
	submissions SubmissionRepository,
	profiles ProfileProvider,
	rules config.Contest,
) *Service {
	return &Service{
		contests:    contests,
		submissions: submissions,
		profiles:    profiles,
		rules:       rules,
		now:         time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create opens a contest. Only creator-tier addresses may do so.
func (s *Service) Create(ctx context.Context, in CreateInput) (entity.Contest, error) {
	if err := s.validateCreate(in); err != nil {
		return entity.Contest{}, err
	}

	creator, err := s.profiles.Profile(ctx, in.Creator)
	if err != nil {
		return entity.Contest{}, fmt.Errorf("profiles.Profile: %w", err)
	}

	if !creator.CanCreateContest {
		return entity.Contest{}, domain.NewError(
			errcodes.InsufficientCredibility,
			fmt.Sprintf("creating contests requires a score of at least %v", reputation.CreatorMinScore()),
		)
	}

	now := s.now().UTC()
	submissionDeadline := now.Add(in.SubmissionDuration)

	contest := entity.Contest{
		ID:                  xid.New().String(),
		Title:               strings.TrimSpace(in.Title),
		Prompt:              strings.TrimSpace(in.Prompt),
		Description:         strings.TrimSpace(in.Description),
		Creator:             creator.Address,
		SubmissionDeadline:  submissionDeadline,
		VotingDeadline:      submissionDeadline.Add(in.VotingDuration),
		RewardsPool:         in.RewardsPool,
		MinCredibilityScore: in.MinCredibilityScore,
		IsActive:            true,
		CreatedAt:           now,
	}

	if err := s.contests.Create(ctx, &contest); err != nil {
		return entity.Contest{}, fmt.Errorf("contests.Create: %w", err)
	}

	logger(ctx).Info("contest created",
		slog.String("contest_id", contest.ID),
		slog.String("creator", contest.Creator),
		slog.Time("voting_deadline", contest.VotingDeadline),
	)

	return contest, nil
}

func (s *Service) Get(ctx context.Context, id string) (entity.Contest, error) {
	contest, err := s.contests.GetByID(ctx, id)
	if err != nil {
		return entity.Contest{}, fmt.Errorf("contests.GetByID: %w", err)
	}

	return *contest, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]entity.Contest, error) {
	if limit <= 0 || offset < 0 {
		return nil, domain.NewError(errcodes.InvalidPaging, "limit must be positive and offset non-negative")
	}

	contests, err := s.contests.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("contests.List: %w", err)
	}

	return contests, nil
}

// Close deactivates a contest. Closed contests accept neither submissions nor votes.
func (s *Service) Close(ctx context.Context, id string) error {
	if err := s.contests.UpdateStatus(ctx, id, false); err != nil {
		return fmt.Errorf("contests.UpdateStatus: %w", err)
	}

	attrs := []any{slog.String("contest_id", id)}
	if userID, err := contextx.UserIDFromContext(ctx); err == nil {
		attrs = append(attrs, logx.Stringer("closed_by", userID))
	}

	logger(ctx).Info("contest closed", attrs...)

	return nil
}

// Submit enters a piece into a contest during its submission phase.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (entity.Submission, error) {
	if err := s.validateSubmit(in); err != nil {
		return entity.Submission{}, err
	}

	contest, err := s.contests.GetByID(ctx, in.ContestID)
	if err != nil {
		return entity.Submission{}, fmt.Errorf("contests.GetByID: %w", err)
	}

	now := s.now().UTC()

	if !contest.IsActive {
		return entity.Submission{}, domain.NewError(errcodes.ContestNotActive, "contest is not active")
	}

	if contest.PhaseAt(now) != entity.PhaseSubmission {
		return entity.Submission{}, domain.NewError(errcodes.SubmissionClosed, "submission deadline has passed")
	}

	submitter, err := s.profiles.Profile(ctx, in.Submitter)
	if err != nil {
		return entity.Submission{}, fmt.Errorf("profiles.Profile: %w", err)
	}

	if !submitter.CanSubmit || submitter.Score < contest.MinCredibilityScore {
		return entity.Submission{}, domain.NewError(
			errcodes.InsufficientCredibility,
			fmt.Sprintf("score %d is below the contest requirement", submitter.Score),
		)
	}

	exists, err := s.submissions.ExistsForSubmitter(ctx, contest.ID, submitter.Address)
	if err != nil {
		return entity.Submission{}, fmt.Errorf("submissions.ExistsForSubmitter: %w", err)
	}

	if exists {
		return entity.Submission{}, domain.NewError(errcodes.AlreadySubmitted, "already submitted to this contest")
	}

	submission := entity.Submission{
		ID:          xid.New().String(),
		ContestID:   contest.ID,
		Submitter:   submitter.Address,
		ContentURI:  strings.TrimSpace(in.ContentURI),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return entity.Submission{}, fmt.Errorf("submissions.Create: %w", err)
	}

	logger(ctx).Info("submission created",
		slog.String("contest_id", contest.ID),
		slog.String("submission_id", submission.ID),
		slog.String("submitter", submission.Submitter),
	)

	return submission, nil
}

// Submissions lists a contest's entries newest first.
func (s *Service) Submissions(ctx context.Context, contestID string) ([]entity.Submission, error) {
	if _, err := s.contests.GetByID(ctx, contestID); err != nil {
		return nil, fmt.Errorf("contests.GetByID: %w", err)
	}

	submissions, err := s.submissions.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("submissions.ListByContest: %w", err)
	}

	return submissions, nil
}

func (s *Service) validateCreate(in CreateInput) error {
	invalid := func(format string, args ...any) error {
		return domain.NewError(errcodes.InvalidContest, fmt.Sprintf(format, args...))
	}

	switch {
	case !textWithin(in.Title, 1, s.rules.MaxTitleLength):
		return invalid("title must be 1..%d characters", s.rules.MaxTitleLength)
	case !textWithin(in.Prompt, 1, s.rules.MaxPromptLength):
		return invalid("prompt must be 1..%d characters", s.rules.MaxPromptLength)
	case !textWithin(in.Description, 0, s.rules.MaxDescriptionLength):
		return domain.NewError(errcodes.InvalidDescription,
			fmt.Sprintf("description must be at most %d characters", s.rules.MaxDescriptionLength))
	case in.SubmissionDuration < s.rules.MinSubmissionDuration || in.SubmissionDuration > s.rules.MaxSubmissionDuration:
		return invalid("submission duration must be within [%s, %s]",
			s.rules.MinSubmissionDuration, s.rules.MaxSubmissionDuration)
	case in.VotingDuration < s.rules.MinVotingDuration || in.VotingDuration > s.rules.MaxVotingDuration:
		return invalid("voting duration must be within [%s, %s]", s.rules.MinVotingDuration, s.rules.MaxVotingDuration)
	case !(in.RewardsPool >= s.rules.MinRewardsPool && in.RewardsPool <= s.rules.MaxRewardsPool):
		return invalid("rewards pool must be within [%v, %v]", s.rules.MinRewardsPool, s.rules.MaxRewardsPool)
	case in.MinCredibilityScore < 0:
		return domain.NewError(errcodes.InvalidScore, "minimum credibility score must not be negative")
	}

	return nil
}

func (s *Service) validateSubmit(in SubmitInput) error {
	if in.ContestID == "" {
		return domain.NewError(errcodes.InvalidContestID, "contest id is required")
	}

	uri, err := url.ParseRequestURI(strings.TrimSpace(in.ContentURI))
	if err != nil || uri.Scheme == "" || uri.Host == "" {
		return domain.NewError(errcodes.InvalidURL, "content uri must be an absolute url")
	}

	if !textWithin(in.Title, 1, s.rules.MaxTitleLength) {
		return domain.NewError(errcodes.InvalidSubmission,
			fmt.Sprintf("title must be 1..%d characters", s.rules.MaxTitleLength))
	}

	if !textWithin(in.Description, 0, s.rules.MaxDescriptionLength) {
		return domain.NewError(errcodes.InvalidDescription,
			fmt.Sprintf("description must be at most %d characters", s.rules.MaxDescriptionLength))
	}

	return nil
}

func textWithin(s string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= minLen && n <= maxLen
}
