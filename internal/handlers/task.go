package handlers

import (
	"net/http"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/dto"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task draft"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), *actorID(c), service.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		Priority:         req.Priority,
		DueDate:          req.DueDate.Ptr(),
		RecurringType:    req.RecurringType,
		RecurringTime:    req.RecurringTime,
		RecurringEndDate: req.RecurringEndDate.Ptr(),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// List godoc
// @Summary      List visible tasks
// @Description  Returns tasks owned by the caller plus shared tasks, filtered
// @Description  by status, priority and date, in the requested sort order.
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        status    query  string  false  "complete|incomplete"
// @Param        priority  query  string  false  "low|medium|high"
// @Param        date      query  string  false  "YYYY-MM-DD"
// @Param        sort      query  string  false  "created_at|updated_at|title|status|due_date|priority"
// @Success      200  {object}  dto.TaskListResponse
// @Failure      400  {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	filter := service.ListFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Sort:     c.Query("sort"),
	}
	if raw := c.Query("date"); raw != "" {
		d, err := dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Date = &d
	}
	list, err := h.svc.List(c.Request.Context(), actorID(c), filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskListResponse{Items: tasksToResponses(list)})
}

// Counts godoc
// @Summary      Task counts by status
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.TaskCountsResponse
// @Router       /tasks/counts [get]
func (h *TaskHandler) Counts(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context(), actorID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskCountsResponse{
		Total:      counts.Total,
		Complete:   counts.Complete,
		Incomplete: counts.Incomplete,
	})
}

// GetByID godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id, actorID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		RecurringType: req.RecurringType,
		RecurringTime: req.RecurringTime,
	}
	if req.DueDate != nil {
		in.DueDate = req.DueDate.Ptr()
	}
	if req.RecurringEndDate != nil {
		in.RecurringEndDate = req.RecurringEndDate.Ptr()
	}
	t, err := h.svc.Update(c.Request.Context(), id, actorID(c), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// SetStatus godoc
// @Summary      Set task status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Task ID"
// @Param        body  body      dto.SetStatusRequest  true  "complete or incomplete"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id}/status [post]
func (h *TaskHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.SetStatus(c.Request.Context(), id, actorID(c), req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// SetShared godoc
// @Summary      Toggle task sharing
// @Description  Owner only. A shared task is visible and editable by every
// @Description  authenticated user; non-owners get 404 here regardless.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Task ID"
// @Param        body  body      dto.SetSharedRequest  true  "Shared flag"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id}/share [post]
func (h *TaskHandler) SetShared(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetSharedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.SetShared(c.Request.Context(), id, actorID(c), *req.IsShared)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminList godoc
// @Summary      List all tasks (admin)
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Param        status    query  string  false  "complete|incomplete"
// @Param        priority  query  string  false  "low|medium|high"
// @Param        sort      query  string  false  "sort field"
// @Success      200  {object}  dto.TaskListResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/tasks [get]
func (h *TaskHandler) AdminList(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), nil, service.ListFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskListResponse{Items: tasksToResponses(list)})
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Status:           string(t.Status),
		Priority:         string(t.Priority),
		DueDate:          dto.FormatDate(t.DueDate),
		RecurringTime:    t.RecurringTime,
		RecurringEndDate: dto.FormatDate(t.RecurringEndDate),
		Owner:            t.OwnerID,
		IsShared:         t.IsShared,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.RecurringType != nil {
		rt := string(*t.RecurringType)
		resp.RecurringType = &rt
	}
	return resp
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
