package handlers

import (
	"net/http"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/dto"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	svc *service.TaskService
}

func NewCalendarHandler(svc *service.TaskService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// Range godoc
// @Summary      Tasks bucketed by date over a range
// @Description  Inclusive window. Daily recurrences appear on every active
// @Description  day; weekly/monthly rules only through their due date.
// @Tags         calendar
// @Produce      json
// @Security     CookieAuth
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.CalendarResponse
// @Failure      400  {object}  map[string]string
// @Router       /calendar [get]
func (h *CalendarHandler) Range(c *gin.Context) {
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
	buckets, err := h.svc.ForRange(c.Request.Context(), actorID(c), start, end)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bucketsToResponse(buckets))
}

// ByDate godoc
// @Summary      Tasks present on one date
// @Tags         calendar
// @Produce      json
// @Security     CookieAuth
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.TaskListResponse
// @Failure      400  {object}  map[string]string
// @Router       /calendar/{date} [get]
func (h *CalendarHandler) ByDate(c *gin.Context) {
	date, err := dto.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.svc.ForDate(c.Request.Context(), actorID(c), date)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskListResponse{Items: tasksToResponses(list)})
}

func bucketsToResponse(buckets map[string][]dom.Task) dto.CalendarResponse {
	days := make(map[string][]dto.TaskResponse, len(buckets))
	for date, tasks := range buckets {
		days[date] = tasksToResponses(tasks)
	}
	return dto.CalendarResponse{Days: days}
}
