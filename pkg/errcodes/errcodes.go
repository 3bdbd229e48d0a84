package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"
	InvalidAddress      failure.ErrorCode = "InvalidAddress"
	InvalidDescription  failure.ErrorCode = "InvalidDescription"
	InvalidURL          failure.ErrorCode = "InvalidURL"

	// Reputation
	InvalidScore            failure.ErrorCode = "InvalidScore"
	InsufficientCredibility failure.ErrorCode = "InsufficientCredibility"
	EthosUnavailable        failure.ErrorCode = "EthosUnavailable"
	EnsNotResolved          failure.ErrorCode = "EnsNotResolved"

	// Contests and submissions
	ContestNotFound     failure.ErrorCode = "ContestNotFound"
	ContestNotActive    failure.ErrorCode = "ContestNotActive"
	InvalidContest      failure.ErrorCode = "InvalidContest"
	SubmissionNotFound  failure.ErrorCode = "SubmissionNotFound"
	SubmissionClosed    failure.ErrorCode = "SubmissionClosed"
	AlreadySubmitted    failure.ErrorCode = "AlreadySubmitted"
	InvalidSubmission   failure.ErrorCode = "InvalidSubmission"
	InvalidContestID    failure.ErrorCode = "InvalidContestID"
	InvalidSubmissionID failure.ErrorCode = "InvalidSubmissionID"

	// Voting
	InvalidVoteAmount failure.ErrorCode = "InvalidVoteAmount"
	AlreadyVoted      failure.ErrorCode = "AlreadyVoted"
	VotingClosed      failure.ErrorCode = "VotingClosed"
	VotingNotStarted  failure.ErrorCode = "VotingNotStarted"
	TallyOutdated     failure.ErrorCode = "TallyOutdated"
)
