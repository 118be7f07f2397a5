package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/taskhive-dev/taskhive/internal/authz"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateTaskRequest follows the same partial-update rules as projects:
// title only when supplied non-blank, description whenever present, status
// only when supplied and then validated against the enum.
type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// TaskHandler serves the task routes nested under a project. Every
// operation resolves the parent project first and applies the same
// ownership check as the project routes; tasks have no owner of their own.
type TaskHandler struct {
	Projects store.ProjectStore
	Tasks    store.TaskStore
}

func NewTaskHandler(projects store.ProjectStore, tasks store.TaskStore) *TaskHandler {
	return &TaskHandler{Projects: projects, Tasks: tasks}
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	project, ok := h.parentProject(ctx, "Not authorized to add tasks to this project")

	if !ok {
		return
	}

	title := strings.TrimSpace(req.Title)

	if title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Please Add Task Title to continue"})
		return
	}

	status := req.Status

	if status == "" {
		status = models.TaskStatusTodo
	} else if !models.ValidTaskStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task status"})
		return
	}

	task := models.Task{
		ProjectID:   project.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
	}

	if err := h.Tasks.CreateTask(ctx.Request.Context(), &task); err != nil {
		log.Error().Err(err).Msg("create task failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(ctx *gin.Context) {
	project, ok := h.parentProject(ctx, "Not authorized to view tasks for this project")

	if !ok {
		return
	}

	tasks, err := h.Tasks.TasksByProject(ctx.Request.Context(), project.ID)

	if err != nil {
		log.Error().Err(err).Msg("list tasks failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	project, ok := h.parentProject(ctx, "Not authorized to update tasks for this project")

	if !ok {
		return
	}

	task, ok := h.scopedTask(ctx, project)

	if !ok {
		return
	}

	if req.Status != "" && !models.ValidTaskStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task status"})
		return
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		task.Title = title
	}

	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}

	if req.Status != "" {
		task.Status = req.Status
	}

	if err := h.Tasks.SaveTask(ctx.Request.Context(), task); err != nil {
		log.Error().Err(err).Msg("update task failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	project, ok := h.parentProject(ctx, "Not authorized to delete tasks for this project")

	if !ok {
		return
	}

	task, ok := h.scopedTask(ctx, project)

	if !ok {
		return
	}

	if err := h.Tasks.DeleteTask(ctx.Request.Context(), project.ID, task.ID); err != nil {
		log.Error().Err(err).Msg("delete task failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// parentProject resolves the path project and enforces the shared check
// order: malformed id (400), existence (404), then ownership (403).
func (h *TaskHandler) parentProject(ctx *gin.Context, forbiddenMsg string) (*models.Project, bool) {
	projectID, err := utils.ProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project ID"})
		return nil, false
	}

	currentUser, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return nil, false
	}

	project, err := h.Projects.ProjectByID(ctx.Request.Context(), projectID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		} else {
			log.Error().Err(err).Msg("load project failed")
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return nil, false
	}

	if !authz.Owns(currentUser.ID, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"message": forbiddenMsg})
		return nil, false
	}

	return project, true
}

// scopedTask loads the path task bound to the given project; a task id
// that exists under a different project is reported as not found.
func (h *TaskHandler) scopedTask(ctx *gin.Context, project *models.Project) (*models.Task, bool) {
	taskID, err := utils.TaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return nil, false
	}

	task, err := h.Tasks.TaskByID(ctx.Request.Context(), project.ID, taskID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		} else {
			log.Error().Err(err).Msg("load task failed")
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return nil, false
	}

	return task, true
}
