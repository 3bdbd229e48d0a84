package entity

import "trustrace/internal/domain/reputation"

// Profile is an address's standing derived from its Ethos score.
type Profile struct {
	Address          string
	Score            int
	Tier             reputation.Tier
	Progress         reputation.Progress
	CredibilityLevel string
	CanCreateContest bool
	CanSubmit        bool
	IsCurator        bool
}

// Activity counts an address's vouches and attestations on Ethos.
type Activity struct {
	Address         string
	VouchesReceived int
	VouchesGiven    int
	Attestations    int
}
