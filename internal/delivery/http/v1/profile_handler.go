package v1

import (
	"net/http"
	"strconv"

	"go-talentpool-backend/internal/delivery/http/response"
	"go-talentpool-backend/internal/domain"
	"go-talentpool-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(r *gin.Engine, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	api := r.Group("/api")
	{
		api.GET("/profiles", handler.List)
		api.GET("/profiles/:userId", handler.GetByUser)
		api.POST("/profiles", handler.Create)
		api.PUT("/profiles/:userId", handler.Update)
	}
}

func userIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid user id.")
	}
	return id, nil
}

// List godoc
// @Summary      List all student profiles
// @Description  Returns every profile in the talent pool, skills as a JSON array.
// @Tags         profiles
// @Produce      json
// @Success      200  {array}   domain.StudentProfile
// @Failure      500  {object}  map[string]any
// @Router       /api/profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetByUser godoc
// @Summary      Get a profile by user id
// @Tags         profiles
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  domain.StudentProfile
// @Failure      404  {object}  map[string]any
// @Router       /api/profiles/{userId} [get]
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	profile, err := h.profileUC.GetByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Create godoc
// @Summary      Submit a new student profile
// @Description  Creates the profile for a user. Responds 409 with the existing profileId when one already exists; callers should redirect the write to PUT.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        profile  body  domain.StudentProfile  true  "Profile"
// @Success      201  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /api/profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var profile domain.StudentProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	id, err := h.profileUC.Create(c.Request.Context(), &profile)
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusCreated, "Profile inserted successfully!", map[string]any{"id": id})
}

// Update godoc
// @Summary      Update an existing student profile
// @Description  Overwrites the profile fields for a user and re-stamps lastUpdated.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        userId   path  int                    true  "User ID"
// @Param        profile  body  domain.StudentProfile  true  "Profile fields"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/profiles/{userId} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var profile domain.StudentProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.profileUC.Update(c.Request.Context(), userID, &profile); err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, "Profile updated successfully!", map[string]any{"userId": userID})
}
