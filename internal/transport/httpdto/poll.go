package httpdto

type CreatePollRequest struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
}

type UpdatePollRequest struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
}

type PollDTO struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	CreatedAt string   `json:"created_at"`
	IsOwner   bool     `json:"is_owner,omitempty"`
}

type PollListResponse struct {
	Polls []PollDTO `json:"polls"`
}
