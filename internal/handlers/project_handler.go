package handlers

import (
	"net/http"

	"project_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var input services.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := h.projectService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Project successfully created", project)
}

func (h *ProjectHandler) FindAll(c *gin.Context) {
	projects, err := h.projectService.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Projects successfully retrieved", projects)
}

func (h *ProjectHandler) FindOne(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := h.projectService.FindOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Project successfully retrieved", project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := h.projectService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Project successfully updated", project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := h.projectService.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Project successfully deleted", project)
}

func (h *ProjectHandler) Members(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	team, err := h.projectService.Members(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetched all developers for this project", team)
}
