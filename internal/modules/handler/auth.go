package handler

import (
	"errors"
	"net/http"

	"github.com/appforge-io/appforge/internal/middleware"
	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

// currentUser pulls the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) (*model.User, bool) {
	u, ok := c.MustGet(middleware.ContextUserKey).(*model.User)
	return u, ok
}

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// Register godoc
//
//	@Summary		Register
//	@Description	Create a user account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RegisterReq	true	"Register payload"
//	@Success		201	{object}	serializer.Response{data=model.User}
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, serializer.Err(http.StatusConflict, "email already registered", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: user})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
//
//	@Summary		Login
//	@Description	Authenticate and receive a session token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.LoginReq	true	"Login payload"
//	@Success		200	{object}	serializer.Response{data=service.LoginOutput}
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid email or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Me godoc
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.User}
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: user})
}
