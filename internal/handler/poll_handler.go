package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pollbox/internal/domain/poll"
	"pollbox/internal/services"
	"pollbox/internal/transport/httpdto"
)

// PollHandler handles poll CRUD endpoints.
type PollHandler struct {
	service *services.PollService
}

func NewPollHandler(service *services.PollService) *PollHandler {
	return &PollHandler{service: service}
}

// Create handles poll creation.
func (h *PollHandler) Create(c *gin.Context) {
	var req httpdto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.Question, req.Options)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(toPollDTO(p, false)))
}

// List returns the caller's polls, newest first.
func (h *PollHandler) List(c *gin.Context) {
	polls, err := h.service.ListOwn(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	dtos := make([]httpdto.PollDTO, len(polls))
	for i, p := range polls {
		dtos[i] = toPollDTO(p, true)
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PollListResponse{Polls: dtos}))
}

// Get returns a single poll. Public; no auth required.
func (h *PollHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(toPollDTO(view.Poll, view.IsOwner)))
}

// Update rewrites a poll's question and options.
func (h *PollHandler) Update(c *gin.Context) {
	var req httpdto.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), req.Question, req.Options); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// Delete removes a poll and its votes.
func (h *PollHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func toPollDTO(p poll.Poll, isOwner bool) httpdto.PollDTO {
	return httpdto.PollDTO{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		Question:  p.Question,
		Options:   p.Options,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		IsOwner:   isOwner,
	}
}
