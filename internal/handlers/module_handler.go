package handlers

import (
	"net/http"

	"project_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ModuleHandler struct {
	moduleService services.ModuleService
}

func NewModuleHandler(moduleService services.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService}
}

func (h *ModuleHandler) Create(c *gin.Context) {
	var input services.CreateModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	module, err := h.moduleService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Module successfully created", module)
}

func (h *ModuleHandler) FindAll(c *gin.Context) {
	modules, err := h.moduleService.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Modules found", modules)
}

func (h *ModuleHandler) FindOne(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	module, err := h.moduleService.FindOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Module found", module)
}

func (h *ModuleHandler) FindByProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	modules, err := h.moduleService.FindByProjectID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Module found", modules)
}

func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	module, err := h.moduleService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Module successfully updated", module)
}

func (h *ModuleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	module, err := h.moduleService.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Module successfully deleted", module)
}

func (h *ModuleHandler) AssignedDevelopers(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	developers, err := h.moduleService.AssignedDevelopers(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Assign developer for the project", developers)
}
