package api

import (
	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{categories: service.NewCategoryService(db)}
}

type CategoryCreateRequest struct {
	Name  string              `json:"name" binding:"required,min=1,max=100"`
	Type  models.CategoryType `json:"type" binding:"required,enum" example:"EXPENSE"`
	Icon  *string             `json:"icon" binding:"omitempty,max=50"`
	Color *string             `json:"color" binding:"omitempty,max=7" example:"#ef4444"`
}

// List
// @Summary List categories
// @Description Defaults first, then by name
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param type query string false "INCOME or EXPENSE"
// @Success 200 {object} Response{data=[]models.Category}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var typ *models.CategoryType
	if raw := c.Query("type"); raw != "" {
		t := models.CategoryType(raw)
		if !t.Valid() {
			BadRequest(c, "type must be INCOME or EXPENSE")
			return
		}
		typ = &t
	}

	list, err := h.categories.List(c.Request.Context(), middleware.GetCurrentUserID(c), typ)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, list)
}

// Create
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "category"
// @Success 201 {object} Response{data=models.Category}
// @Failure 400 {object} Response
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.CategoryInput{
		Name:  req.Name,
		Type:  req.Type,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, cat)
}
