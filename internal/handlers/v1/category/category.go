package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
)

// categoryService is the slice of service.CategoryService the handlers use.
type categoryService interface {
	ListCategories(ctx context.Context, typeFilter string, includeInactive bool) ([]*category.Category, error)
	ListSubcategories(ctx context.Context, categoryID *int64, includeInactive bool) ([]*category.Subcategory, error)
}

// Category is the API response model for a category.
type Category struct {
	ID          int64  `json:"id" doc:"Category id"`
	Name        string `json:"name" doc:"Category name"`
	Description string `json:"description" doc:"Description"`
	Icon        string `json:"icon" doc:"Icon name"`
	Color       string `json:"color" doc:"Hex color"`
	Type        string `json:"type" enum:"GASTO,INGRESO" doc:"Category type"`
	IsActive    bool   `json:"is_active" doc:"Active flag"`
}

// Subcategory is the API response model for a subcategory.
type Subcategory struct {
	ID          int64  `json:"id" doc:"Subcategory id"`
	CategoryID  int64  `json:"category_id" doc:"Parent category id"`
	Name        string `json:"name" doc:"Subcategory name"`
	Description string `json:"description" doc:"Description"`
	IsActive    bool   `json:"is_active" doc:"Active flag"`
}

type ListCategoriesInput struct {
	Type            string `query:"type" enum:"GASTO,INGRESO,gasto,ingreso" doc:"Only categories of this type"`
	IncludeInactive bool   `query:"include_inactive" doc:"Include inactive categories"`
}

type ListCategoriesOutput struct {
	Body []Category
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	CategoryService categoryService
}

func NewListCategoriesHandler(svc categoryService) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := h.CategoryService.ListCategories(ctx, input.Type, input.IncludeInactive)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to list categories")
	}

	body := make([]Category, len(categories))
	for i, c := range categories {
		body[i] = Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
			Color:       c.Color,
			IsActive:    c.Status.IsActive(),
		}
		if c.Type != nil {
			body[i].Type = string(c.Type.Name)
		}
	}
	return &ListCategoriesOutput{Body: body}, nil
}

type ListSubcategoriesInput struct {
	CategoryID      int64 `query:"category_id" minimum:"0" doc:"Only subcategories of this category"`
	IncludeInactive bool  `query:"include_inactive" doc:"Include inactive subcategories"`
}

type ListSubcategoriesOutput struct {
	Body []Subcategory
}

// ListSubcategoriesHandler handles GET /v1/subcategories.
type ListSubcategoriesHandler struct {
	CategoryService categoryService
}

func NewListSubcategoriesHandler(svc categoryService) *ListSubcategoriesHandler {
	return &ListSubcategoriesHandler{CategoryService: svc}
}

func (h *ListSubcategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-subcategories",
		Method:      http.MethodGet,
		Path:        "/v1/subcategories",
		Summary:     "List subcategories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListSubcategoriesHandler) handle(ctx context.Context, input *ListSubcategoriesInput) (*ListSubcategoriesOutput, error) {
	subcategories, err := h.CategoryService.ListSubcategories(ctx, apiutil.OptionalID(input.CategoryID), input.IncludeInactive)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to list subcategories")
	}

	body := make([]Subcategory, len(subcategories))
	for i, s := range subcategories {
		body[i] = Subcategory{
			ID:          s.ID,
			CategoryID:  s.CategoryID,
			Name:        s.Name,
			Description: s.Description,
			IsActive:    s.Status.IsActive(),
		}
	}
	return &ListSubcategoriesOutput{Body: body}, nil
}
