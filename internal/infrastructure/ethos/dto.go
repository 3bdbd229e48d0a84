package ethos

import (
	"strings"

	"trustrace/internal/domain/entity"
)

type scoreResponse struct {
	Score int `json:"score"`
}

type ensResponse struct {
	Address string `json:"address"`
}

// userProfile is the subset of an Ethos user record the service reads.
type userProfile struct {
	Address          string `json:"address"`
	CredibilityScore int    `json:"credibilityScore"`
	VouchesReceived  int    `json:"vouchesReceived"`
	VouchesGiven     int    `json:"vouchesGiven"`
	Attestations     int    `json:"attestations"`
}

func (p userProfile) toDomain(resolved string) entity.Activity {
	address := strings.ToLower(p.Address)
	if address == "" {
		address = resolved
	}

	return entity.Activity{
		Address:         address,
		VouchesReceived: p.VouchesReceived,
		VouchesGiven:    p.VouchesGiven,
		Attestations:    p.Attestations,
	}
}
