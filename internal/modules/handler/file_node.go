package handler

import (
	"errors"
	"net/http"

	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileNodeHandler struct {
	svc service.FileNodeService
}

func NewFileNodeHandler(svc service.FileNodeService) *FileNodeHandler {
	return &FileNodeHandler{svc: svc}
}

func projectIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project id", err))
		return uuid.Nil, false
	}
	return id, true
}

type CreateFileNodeReq struct {
	Path     string `json:"path" binding:"required,nodepath"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	IsFolder bool   `json:"is_folder"`
}

// Create godoc
//
//	@Summary		Create file node
//	@Description	Create a file or folder at the given path within a project
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Param			payload	body	handler.CreateFileNodeReq	true	"Node payload"
//	@Success		201	{object}	serializer.Response{data=model.FileNode}
//	@Router			/project/{project_id}/files [post]
func (h *FileNodeHandler) Create(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	req := CreateFileNodeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	node, err := h.svc.Create(c.Request.Context(), service.CreateFileNodeInput{
		ProjectID: projectID,
		Path:      req.Path,
		Name:      req.Name,
		Content:   req.Content,
		IsFolder:  req.IsFolder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPath):
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found", err))
		case errors.Is(err, service.ErrPathTaken):
			c.JSON(http.StatusConflict, serializer.Err(http.StatusConflict, "path already exists", err))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: node})
}

// List godoc
//
//	@Summary	List file nodes
//	@Description	List every file and folder of a project ordered by path
//	@Tags		files
//	@Produce	json
//	@Security	BearerAuth
//	@Param		project_id	path	string	true	"Project ID"
//	@Success	200	{object}	serializer.Response{data=[]model.FileNode}
//	@Router		/project/{project_id}/files [get]
func (h *FileNodeHandler) List(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	nodes, err := h.svc.List(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: nodes})
}

type UpdateFileNodeReq struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
	Path    *string `json:"path" binding:"omitempty,nodepath"`
}

// Update godoc
//
//	@Summary		Update file node
//	@Description	Patch a node's name, content or path
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Param			node_id	path	string	true	"Node ID"
//	@Param			payload	body	handler.UpdateFileNodeReq	true	"Fields to update"
//	@Success		200	{object}	serializer.Response{data=model.FileNode}
//	@Router			/project/{project_id}/files/{node_id} [put]
func (h *FileNodeHandler) Update(c *gin.Context) {
	if _, ok := projectIDParam(c); !ok {
		return
	}
	nodeID, err := uuid.Parse(c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid node id", err))
		return
	}
	req := UpdateFileNodeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	node, err := h.svc.Update(c.Request.Context(), nodeID, service.UpdateFileNodeInput{
		Name:    req.Name,
		Content: req.Content,
		Path:    req.Path,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileNodeNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("file not found", err))
		case errors.Is(err, service.ErrEmptyPath):
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		case errors.Is(err, service.ErrPathTaken):
			c.JSON(http.StatusConflict, serializer.Err(http.StatusConflict, "path already exists", err))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: node})
}

// Delete godoc
//
//	@Summary		Delete file node
//	@Description	Delete a node; deleting a folder removes its whole subtree
//	@Tags			files
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Param			node_id	path	string	true	"Node ID"
//	@Success		200	{object}	serializer.Response{data=map[string]bool}
//	@Router			/project/{project_id}/files/{node_id} [delete]
func (h *FileNodeHandler) Delete(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	nodeID, err := uuid.Parse(c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid node id", err))
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), nodeID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"deleted": deleted}})
}

// Raw godoc
//
//	@Summary		Download file content
//	@Description	Serve a file's raw content with a sniffed content type
//	@Tags			files
//	@Produce	octet-stream
//	@Security	BearerAuth
//	@Param		project_id	path	string	true	"Project ID"
//	@Param		node_id	path	string	true	"Node ID"
//	@Success	200	{string}	binary	"file content"
//	@Router		/project/{project_id}/files/{node_id}/raw [get]
func (h *FileNodeHandler) Raw(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	nodeID, err := uuid.Parse(c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid node id", err))
		return
	}

	out, err := h.svc.Raw(c.Request.Context(), nodeID, projectID)
	if err != nil {
		if errors.Is(err, service.ErrFileNodeNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("file not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Name+`"`)
	c.Data(http.StatusOK, out.ContentType, out.Content)
}
