package handlers

import (
	"net/http"

	"project_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var input services.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := h.taskService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Task successfully created", task)
}

func (h *TaskHandler) FindAll(c *gin.Context) {
	tasks, err := h.taskService.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks successfully retrieved", tasks)
}

func (h *TaskHandler) FindOne(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := h.taskService.FindOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task successfully retrieved", task)
}

func (h *TaskHandler) FindByProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tasks, err := h.taskService.FindByProjectID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks successfully retrieved", tasks)
}

func (h *TaskHandler) FindByModule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tasks, err := h.taskService.FindByModuleID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks successfully retrieved", tasks)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := h.taskService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task successfully updated", task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := h.taskService.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task successfully removed", task)
}

func (h *TaskHandler) Start(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := h.taskService.StartTask(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task successfully started", task)
}

func (h *TaskHandler) End(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Progress *float64 `json:"progress" binding:"required"`
		Summary  string   `json:"summary" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, session, err := h.taskService.EndTask(id, *req.Progress, req.Summary)
	if err != nil {
		// When task is non-nil the mutation committed and only the aggregate
		// recompute failed; the error message tells the caller as much.
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task successfully ended", gin.H{
		"task":         task,
		"work_session": session,
	})
}

func (h *TaskHandler) MyTasks(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tasks, err := h.taskService.MyTasks(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *TaskHandler) MyCompletedTasks(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tasks, err := h.taskService.MyCompletedTasks(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Completed Tasks fetched successfully", tasks)
}

func (h *TaskHandler) ManagementDashboard(c *gin.Context) {
	dashboard, err := h.taskService.ManagementDashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks successfully retrieved", dashboard)
}
