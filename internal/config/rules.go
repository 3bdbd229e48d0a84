package config

import "time"

type Voting struct {
	MinVoteAmount float64 `env:"VOTING_MIN_AMOUNT" envDefault:"0.001"`
	MaxVoteAmount float64 `env:"VOTING_MAX_AMOUNT" envDefault:"10"`
}

type Contest struct {
	MinSubmissionDuration time.Duration `env:"CONTEST_MIN_SUBMISSION_DURATION" envDefault:"1h"`
	MaxSubmissionDuration time.Duration `env:"CONTEST_MAX_SUBMISSION_DURATION" envDefault:"720h"`
	MinVotingDuration     time.Duration `env:"CONTEST_MIN_VOTING_DURATION" envDefault:"1h"`
	MaxVotingDuration     time.Duration `env:"CONTEST_MAX_VOTING_DURATION" envDefault:"336h"`
	MinRewardsPool        float64       `env:"CONTEST_MIN_REWARDS_POOL" envDefault:"0.001"`
	MaxRewardsPool        float64       `env:"CONTEST_MAX_REWARDS_POOL" envDefault:"100"`
	MaxTitleLength        int           `env:"CONTEST_MAX_TITLE_LENGTH" envDefault:"100"`
	MaxPromptLength       int           `env:"CONTEST_MAX_PROMPT_LENGTH" envDefault:"1000"`
	MaxDescriptionLength  int           `env:"CONTEST_MAX_DESCRIPTION_LENGTH" envDefault:"1000"`
}
