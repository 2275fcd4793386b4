package handler

import (
	"errors"
	"net/http"

	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	svc service.ProjectService
	gen service.GenerationService
}

func NewProjectHandler(svc service.ProjectService, gen service.GenerationService) *ProjectHandler {
	return &ProjectHandler{svc: svc, gen: gen}
}

type CreateProjectReq struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Prompt      string  `json:"prompt" binding:"required"`
}

// Create godoc
//
//	@Summary		Create project
//	@Description	Create a project owned by the current user. A unique slug is derived from the name.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			payload	body	handler.CreateProjectReq	true	"Project payload"
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/project [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	project, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		Prompt:      req.Prompt,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) || errors.Is(err, service.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

// List godoc
//
//	@Summary	List projects
//	@Description	List the current user's projects, newest first
//	@Tags		project
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.Project}
//	@Router		/project [get]
func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	projects, err := h.svc.ListForOwner(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// Get godoc
//
//	@Summary	Get project
//	@Tags		project
//	@Produce	json
//	@Security	BearerAuth
//	@Param		project_id	path	string	true	"Project ID"
//	@Success	200	{object}	serializer.Response{data=model.Project}
//	@Router		/project/{project_id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project id", err))
		return
	}

	project, err := h.svc.Get(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// GetBySlug godoc
//
//	@Summary	Get project by slug
//	@Tags		project
//	@Produce	json
//	@Security	BearerAuth
//	@Param		slug	path	string	true	"Project slug"
//	@Success	200	{object}	serializer.Response{data=model.Project}
//	@Router		/project/slug/{slug} [get]
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	project, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found", nil))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

type UpdateProjectReq struct {
	Name        *string             `json:"name"`
	Description repo.NullableString `json:"description"`
	Prompt      *string             `json:"prompt"`
}

// Update godoc
//
//	@Summary		Update project
//	@Description	Patch project fields. Renaming recomputes the slug.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Param			payload	body	handler.UpdateProjectReq	true	"Fields to update"
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/project/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project id", err))
		return
	}
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.Update(c.Request.Context(), projectID, service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Prompt:      req.Prompt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found", err))
		case errors.Is(err, service.ErrEmptyName):
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// Delete godoc
//
//	@Summary		Delete project
//	@Description	Delete a project owned by the current user. Files, messages and deployments cascade.
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Success		200	{object}	serializer.Response{data=map[string]bool}
//	@Router			/project/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project id", err))
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), projectID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"deleted": deleted}})
}

// Generate godoc
//
//	@Summary		Generate project files
//	@Description	Classify the project prompt and synthesize the matching file skeleton. Replaces nothing; nodes are appended in one transaction.
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Success		200	{object}	serializer.Response{data=service.GenerateOutput}
//	@Router			/project/{project_id}/generate [post]
func (h *ProjectHandler) Generate(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project id", err))
		return
	}

	out, err := h.gen.Generate(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
