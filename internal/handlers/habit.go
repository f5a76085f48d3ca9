package handlers

import (
	"net/http"
	"time"

	"tasktracker/internal/auth"
	dom "tasktracker/internal/domain"
	"tasktracker/internal/dto"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	svc *service.HabitService
}

func NewHabitHandler(svc *service.HabitService) *HabitHandler {
	return &HabitHandler{svc: svc}
}

// Create godoc
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateHabitRequest  true  "Habit"
// @Success      201   {object}  dto.HabitResponse
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	habit, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habitToResponse(habit, false))
}

// List godoc
// @Summary      List habits with completion for a date
// @Tags         habits
// @Produce      json
// @Security     CookieAuth
// @Param        date  query  string  false  "YYYY-MM-DD, defaults to today"
// @Success      200  {object}  dto.HabitListResponse
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	var date time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date = d
	}
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), date)
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]dto.HabitResponse, len(list))
	for i, hs := range list {
		out[i] = habitToResponse(hs.Habit, hs.Done)
	}
	c.JSON(http.StatusOK, dto.HabitListResponse{Items: out})
}

// Delete removes a habit and its entries.
func (h *HabitHandler) Delete(c *gin.Context) {
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

// ToggleEntry godoc
// @Summary      Toggle completion for a date
// @Description  At most one entry exists per habit and date; toggling flips
// @Description  it rather than inserting another.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path  int  true  "Habit ID"
// @Param        body  body  dto.ToggleEntryRequest  true  "Date (optional)"
// @Success      200   {object}  dto.HabitEntryResponse
// @Failure      404   {object}  map[string]string
// @Router       /habits/{id}/entries/toggle [post]
func (h *HabitHandler) ToggleEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ToggleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var date time.Time
	if req.Date.Ptr() != nil {
		date = *req.Date.Ptr()
	}
	entry, err := h.svc.ToggleEntry(c.Request.Context(), auth.UserIDFromContext(c), id, date)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryToResponse(entry))
}

// Entries lists a habit's entries within a date range.
func (h *HabitHandler) Entries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	start, err := dto.ParseDate(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := dto.ParseDate(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	entries, err := h.svc.Entries(c.Request.Context(), auth.UserIDFromContext(c), id, start, end)
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]dto.HabitEntryResponse, len(entries))
	for i := range entries {
		out[i] = entryToResponse(entries[i])
	}
	c.JSON(http.StatusOK, dto.HabitEntryListResponse{Items: out})
}

func habitToResponse(h dom.Habit, done bool) dto.HabitResponse {
	return dto.HabitResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Done:        done,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func entryToResponse(e dom.HabitEntry) dto.HabitEntryResponse {
	return dto.HabitEntryResponse{
		ID:        e.ID,
		HabitID:   e.HabitID,
		Date:      e.EntryDate.Format("2006-01-02"),
		Completed: e.Completed,
	}
}
