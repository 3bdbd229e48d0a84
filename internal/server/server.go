package server

// Server groups the HTTP handlers of every resource.
type Server struct {
	ReputationServer
	ContestServer
	VotingServer
}

func NewServer(
	reputationServer ReputationServer,
	contestServer ContestServer,
	votingServer VotingServer,
) Server {
	return Server{
		ReputationServer: reputationServer,
		ContestServer:    contestServer,
		VotingServer:     votingServer,
	}
}
