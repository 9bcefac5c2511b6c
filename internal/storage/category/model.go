package category

import (
	"context"
	"time"

	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

// TypeName is the expense/income classification of a category.
type TypeName string

const (
	TypeExpense TypeName = "GASTO"
	TypeIncome  TypeName = "INGRESO"
)

func (t TypeName) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// CategoryType is a row of the category_types reference table.
type CategoryType struct {
	ID          int64
	Name        TypeName
	Description string
}

// Category groups subcategories and carries the presentation fields used by summaries.
type Category struct {
	ID          int64
	Name        string
	Description string
	Icon        string
	Color       string
	Status      status.Status
	TypeID      int64
	Type        *CategoryType
	CreatedAt   time.Time
}

// Subcategory is what a transaction is classified under.
type Subcategory struct {
	ID          int64
	Name        string
	Description string
	Status      status.Status
	CategoryID  int64
	Category    *Category
	CreatedAt   time.Time
}

// CategoryFilter specifies filters for listing categories.
type CategoryFilter struct {
	Type            *TypeName
	IncludeInactive bool
}

// SubcategoryFilter specifies filters for listing subcategories.
type SubcategoryFilter struct {
	CategoryID      *int64
	IncludeInactive bool
}

// ICategoryReader is the read-only lookup over the reference hierarchy.
type ICategoryReader interface {
	// FindSubcategory returns the subcategory with its category and category type attached.
	FindSubcategory(ctx context.Context, id int64) (*Subcategory, error)
	FindTypeByName(ctx context.Context, name TypeName) (*CategoryType, error)
	ListCategories(ctx context.Context, filter *CategoryFilter) ([]*Category, error)
	ListSubcategories(ctx context.Context, filter *SubcategoryFilter) ([]*Subcategory, error)
}
