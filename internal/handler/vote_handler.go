package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pollbox/internal/services"
	"pollbox/internal/transport/httpdto"
)

// VoteHandler handles vote submission and result endpoints.
type VoteHandler struct {
	service *services.VoteService
}

func NewVoteHandler(service *services.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

// Submit records a vote on a poll. Anonymous callers are allowed.
func (h *VoteHandler) Submit(c *gin.Context) {
	var req httpdto.SubmitVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OptionIndex == nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.service.Submit(c.Request.Context(), c.Param("id"), *req.OptionIndex); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse[any](nil))
}

// Results returns the tallied results for a poll. Backend failures are
// reported as a generic message rather than leaking storage errors.
func (h *VoteHandler) Results(c *gin.Context) {
	results, err := h.service.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		if services.HTTPStatus(err) == http.StatusInternalServerError {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("failed to load poll results", "RESULTS_FAILED"))
			return
		}
		writeServiceError(c, err)
		return
	}

	options := make([]httpdto.OptionResultDTO, len(results.Options))
	for i, opt := range results.Options {
		options[i] = httpdto.OptionResultDTO{
			Text:       opt.Text,
			Votes:      opt.Votes,
			Percentage: opt.Percentage,
		}
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PollResultsResponse{
		Poll:       toPollDTO(results.Poll, false),
		Options:    options,
		TotalVotes: results.TotalVotes,
	}))
}

// Voted reports whether the caller already voted on the poll. Anonymous
// callers always get false.
func (h *VoteHandler) Voted(c *gin.Context) {
	hasVoted, err := h.service.HasUserVoted(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.HasVotedResponse{HasVoted: hasVoted}))
}
