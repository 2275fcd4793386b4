package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type PostMessageReq struct {
	Message string `json:"message" binding:"required"`
}

// Post godoc
//
//	@Summary		Send chat message
//	@Description	Append a user message to the project transcript and receive the assistant reply
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			project_id	path	string	true	"Project ID"
//	@Param			payload	body	handler.PostMessageReq	true	"Message payload"
//	@Success		201	{object}	serializer.Response{data=[]model.ChatMessage}
//	@Router			/project/{project_id}/chat [post]
func (h *ChatHandler) Post(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	req := PostMessageReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	messages, err := h.svc.Post(c.Request.Context(), service.PostMessageInput{
		ProjectID: projectID,
		UserID:    user.ID,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: messages})
}

// List godoc
//
//	@Summary	List chat messages
//	@Description	Return a page of the project transcript in chronological order
//	@Tags		chat
//	@Produce	json
//	@Security	BearerAuth
//	@Param		project_id	path	string	true	"Project ID"
//	@Param		limit	query	int		false	"Page size"
//	@Param		cursor	query	string	false	"Cursor from a previous page"
//	@Success	200	{object}	serializer.Response{data=service.ListMessagesOutput}
//	@Router		/project/{project_id}/chat [get]
func (h *ChatHandler) List(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	out, err := h.svc.List(c.Request.Context(), service.ListMessagesInput{
		ProjectID: projectID,
		Limit:     limit,
		Cursor:    c.Query("cursor"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
