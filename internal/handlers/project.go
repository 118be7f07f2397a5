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

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest carries partial-update semantics: the name changes
// only when supplied non-blank, the description changes whenever the field
// is present, including an explicit empty string.
type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ProjectHandler struct {
	Projects store.ProjectStore
}

func NewProjectHandler(projects store.ProjectStore) *ProjectHandler {
	return &ProjectHandler{Projects: projects}
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	currentUser, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	name := strings.TrimSpace(req.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Please enter a project name to continue"})
		return
	}

	// Owner comes from the resolved identity, never from the client.
	project := models.Project{
		OwnerID:     currentUser.ID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}

	if err := h.Projects.CreateProject(ctx.Request.Context(), &project); err != nil {
		log.Error().Err(err).Msg("create project failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	currentUser, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	projects, err := h.Projects.ProjectsByOwner(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		log.Error().Err(err).Msg("list projects failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	project, ok := h.ownedProject(ctx, "Not authorized to view this project")

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	project, ok := h.ownedProject(ctx, "Not authorized to update this project")

	if !ok {
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		project.Name = name
	}

	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}

	if err := h.Projects.SaveProject(ctx.Request.Context(), project); err != nil {
		log.Error().Err(err).Msg("update project failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	project, ok := h.ownedProject(ctx, "Not authorized to delete this project")

	if !ok {
		return
	}

	// Cascades: the store removes the project's tasks together with the
	// project, so no task outlives its parent.
	if err := h.Projects.DeleteProject(ctx.Request.Context(), project.ID); err != nil {
		log.Error().Err(err).Msg("delete project failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ownedProject resolves the path project, enforcing the check order shared
// by every project and task operation: malformed id (400), then existence
// (404), then ownership (403). On failure it writes the response and
// returns false.
func (h *ProjectHandler) ownedProject(ctx *gin.Context, forbiddenMsg string) (*models.Project, bool) {
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
