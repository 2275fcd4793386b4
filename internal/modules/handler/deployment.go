package handler

import (
	"errors"
	"net/http"

	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeploymentHandler struct {
	svc service.DeploymentService
}

func NewDeploymentHandler(svc service.DeploymentService) *DeploymentHandler {
	return &DeploymentHandler{svc: svc}
}

// Trigger godoc
//
//	@Summary		Deploy project
//	@Description	Create a pending deployment and enqueue the simulated build. Progress is polled via the list and get endpoints.
//	@Tags			deployments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Success		202	{object}	serializer.Response{data=model.Deployment}
//	@Router			/project/{project_id}/deployments [post]
func (h *DeploymentHandler) Trigger(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	dep, err := h.svc.Trigger(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusAccepted, serializer.Response{Data: dep})
}

// List godoc
//
//	@Summary	List deployments
//	@Description	Return a project's deployments, newest first
//	@Tags		deployments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		project_id	path	string	true	"Project ID"
//	@Success	200	{object}	serializer.Response{data=[]model.Deployment}
//	@Router		/project/{project_id}/deployments [get]
func (h *DeploymentHandler) List(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	deployments, err := h.svc.List(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: deployments})
}

// Get godoc
//
//	@Summary	Get deployment
//	@Tags		deployments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		project_id	path	string	true	"Project ID"
//	@Param		deployment_id	path	string	true	"Deployment ID"
//	@Success	200	{object}	serializer.Response{data=model.Deployment}
//	@Router		/project/{project_id}/deployments/{deployment_id} [get]
func (h *DeploymentHandler) Get(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	deploymentID, err := uuid.Parse(c.Param("deployment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid deployment id", err))
		return
	}

	dep, err := h.svc.Get(c.Request.Context(), deploymentID, projectID)
	if err != nil {
		if errors.Is(err, service.ErrDeploymentNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("deployment not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: dep})
}
