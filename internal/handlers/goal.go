package handlers

import (
	"net/http"

	"tasktracker/internal/auth"
	dom "tasktracker/internal/domain"
	"tasktracker/internal/dto"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	svc *service.GoalService
}

func NewGoalHandler(svc *service.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

// Create godoc
// @Summary      Create a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateGoalRequest  true  "Goal draft"
// @Success      201   {object}  dto.GoalResponse
// @Router       /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), service.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetDate:  req.TargetDate.Ptr(),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goalToResponse(g))
}

// List godoc
// @Summary      List own goals
// @Tags         goals
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.GoalListResponse
// @Router       /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]dto.GoalResponse, len(list))
	for i := range list {
		out[i] = goalToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.GoalListResponse{Items: out})
}

// GetByID returns one of the caller's goals.
func (h *GoalHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	g, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goalToResponse(g))
}

// Update applies a partial edit to one of the caller's goals.
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.TargetDate != nil {
		in.TargetDate = req.TargetDate.Ptr()
	}
	g, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goalToResponse(g))
}

// SetCompleted flips the completion flag.
func (h *GoalHandler) SetCompleted(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.svc.SetCompleted(c.Request.Context(), auth.UserIDFromContext(c), id, *req.Completed)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goalToResponse(g))
}

// Delete removes one of the caller's goals.
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func goalToResponse(g dom.Goal) dto.GoalResponse {
	return dto.GoalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		TargetDate:  dto.FormatDate(g.TargetDate),
		Completed:   g.Completed,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
