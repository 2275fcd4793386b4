package handler

import (
	"net/http"

	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	svc service.SuggestionService
}

func NewSuggestionHandler(svc service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{svc: svc}
}

// List godoc
//
//	@Summary	List prompt suggestions
//	@Description	Return the active prompt suggestions shown on the landing page
//	@Tags		suggestions
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.PromptSuggestion}
//	@Router		/suggestions [get]
func (h *SuggestionHandler) List(c *gin.Context) {
	suggestions, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: suggestions})
}
