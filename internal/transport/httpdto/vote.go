package httpdto

type SubmitVoteRequest struct {
	OptionIndex *int `json:"option_index" binding:"required"`
}

type OptionResultDTO struct {
	Text       string `json:"text"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
}

type PollResultsResponse struct {
	Poll       PollDTO           `json:"poll"`
	Options    []OptionResultDTO `json:"options"`
	TotalVotes int               `json:"total_votes"`
}

type HasVotedResponse struct {
	HasVoted bool `json:"has_voted"`
}
