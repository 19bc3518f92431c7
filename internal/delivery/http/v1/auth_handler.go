package v1

import (
	"net/http"

	"go-talentpool-backend/internal/delivery/http/response"
	"go-talentpool-backend/internal/domain"
	"go-talentpool-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(r *gin.Engine, authUC domain.AuthUsecase, rateLimit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	r.POST("/register", rateLimit, handler.Register)
	r.POST("/login", rateLimit, handler.Login)
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new user with email and password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body  RegisterRequest  true  "Registration Details"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required."))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusCreated, "User registered successfully!", map[string]any{
		"userId": user.ID,
		"email":  user.Email,
	})
}

// Login godoc
// @Summary      User Login
// @Description  Authenticate with email and password. The password is never echoed back.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required."))
		return
	}

	user, err := h.authUC.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, "Login successful!", map[string]any{
		"userId": user.ID,
		"email":  user.Email,
	})
}
