package models

// Post bodies are opaque to the API, so posts travel as Documents. The
// fields below are the ones the service itself reads or maintains.
const (
	PostFieldAuthorEmail   = "authorEmail"
	PostFieldTag           = "tag"
	PostFieldPostTime      = "postTime"
	PostFieldUpvote        = "upvote"
	PostFieldDownVote      = "downVote"
	PostFieldCommentsCount = "commentsCount"

	// PostFieldTotalVotes is derived at read time as upvote - downVote.
	PostFieldTotalVotes = "totalVotes"
)

// Vote types accepted by the vote route. Anything other than "upvote"
// counts as a downvote.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// IsUpvote reports whether a voteType increments the upvote counter.
func IsUpvote(voteType string) bool {
	return voteType == VoteUp
}

// Post list sort orders.
const (
	SortNewest     = "newest"
	SortPopularity = "popularity"
)
