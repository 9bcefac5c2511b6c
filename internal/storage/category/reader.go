package category

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

// CategoryColumns selects a category joined with its type. Callers alias the
// tables as c and ct.
var CategoryColumns = []any{
	"c.id AS category_id",
	"c.name AS category_name",
	"c.description AS category_description",
	"c.icon AS category_icon",
	"c.color AS category_color",
	"c.is_active AS category_is_active",
	"c.created_at AS category_created_at",
	"ct.id AS category_type_id",
	"ct.name AS category_type_name",
	"ct.description AS category_type_description",
}

// SubcategoryColumns selects a subcategory aliased as s.
var SubcategoryColumns = []any{
	"s.id AS subcategory_id",
	"s.name AS subcategory_name",
	"s.description AS subcategory_description",
	"s.is_active AS subcategory_is_active",
	"s.created_at AS subcategory_created_at",
}

// CategoryRow is the flattened category + type projection. It is embedded by
// other packages' row types that join through the hierarchy.
type CategoryRow struct {
	CategoryID              int64     `db:"category_id"`
	CategoryName            string    `db:"category_name"`
	CategoryDescription     string    `db:"category_description"`
	CategoryIcon            string    `db:"category_icon"`
	CategoryColor           string    `db:"category_color"`
	CategoryIsActive        bool      `db:"category_is_active"`
	CategoryCreatedAt       time.Time `db:"category_created_at"`
	CategoryTypeID          int64     `db:"category_type_id"`
	CategoryTypeName        string    `db:"category_type_name"`
	CategoryTypeDescription string    `db:"category_type_description"`
}

func (row CategoryRow) ToCategory() *Category {
	return &Category{
		ID:          row.CategoryID,
		Name:        row.CategoryName,
		Description: row.CategoryDescription,
		Icon:        row.CategoryIcon,
		Color:       row.CategoryColor,
		Status:      status.FromActive(row.CategoryIsActive),
		TypeID:      row.CategoryTypeID,
		Type: &CategoryType{
			ID:          row.CategoryTypeID,
			Name:        TypeName(row.CategoryTypeName),
			Description: row.CategoryTypeDescription,
		},
		CreatedAt: row.CategoryCreatedAt,
	}
}

// SubcategoryRow is the flattened subcategory + category + type projection.
type SubcategoryRow struct {
	SubcategoryID          int64     `db:"subcategory_id"`
	SubcategoryName        string    `db:"subcategory_name"`
	SubcategoryDescription string    `db:"subcategory_description"`
	SubcategoryIsActive    bool      `db:"subcategory_is_active"`
	SubcategoryCreatedAt   time.Time `db:"subcategory_created_at"`
	CategoryRow
}

func (row SubcategoryRow) ToSubcategory() *Subcategory {
	category := row.ToCategory()
	return &Subcategory{
		ID:          row.SubcategoryID,
		Name:        row.SubcategoryName,
		Description: row.SubcategoryDescription,
		Status:      status.FromActive(row.SubcategoryIsActive),
		CategoryID:  category.ID,
		Category:    category,
		CreatedAt:   row.SubcategoryCreatedAt,
	}
}

// JoinHierarchy joins categories (c) and category_types (ct) onto a query that
// already has subcategories aliased as s.
func JoinHierarchy() []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.InnerJoin("categories AS c").On(psql.Raw("c.id = s.category_id")),
		sm.InnerJoin("category_types AS ct").On(psql.Raw("ct.id = c.type_id")),
	}
}

var _ ICategoryReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) subcategoryQuery(extra ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(SubcategoryColumns...),
		sm.Columns(CategoryColumns...),
		sm.From("subcategories AS s"),
	}
	queryMods = append(queryMods, JoinHierarchy()...)
	queryMods = append(queryMods, extra...)
	return psql.Select(queryMods...)
}

func (r *Reader) FindSubcategory(ctx context.Context, id int64) (*Subcategory, error) {
	query := r.subcategoryQuery(sm.Where(psql.Quote("s", "id").EQ(psql.Arg(id))))
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[SubcategoryRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("subcategory", id)
	}
	if err != nil {
		return nil, err
	}
	return row.ToSubcategory(), nil
}

func (r *Reader) ListSubcategories(ctx context.Context, filter *SubcategoryFilter) ([]*Subcategory, error) {
	var extra []bob.Mod[*dialect.SelectQuery]
	if filter != nil {
		if filter.CategoryID != nil {
			extra = append(extra, sm.Where(psql.Quote("s", "category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if !filter.IncludeInactive {
			extra = append(extra, sm.Where(psql.Quote("s", "is_active").EQ(psql.Arg(true))))
		}
	}
	extra = append(extra,
		sm.OrderBy(psql.Quote("s", "name")).Asc(),
		sm.OrderBy(psql.Quote("s", "id")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, r.subcategoryQuery(extra...), scan.StructMapper[SubcategoryRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Subcategory, len(rows))
	for i, row := range rows {
		result[i] = row.ToSubcategory()
	}
	return result, nil
}

func (r *Reader) ListCategories(ctx context.Context, filter *CategoryFilter) ([]*Category, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(CategoryColumns...),
		sm.From("categories AS c"),
		sm.InnerJoin("category_types AS ct").On(psql.Raw("ct.id = c.type_id")),
	}
	if filter != nil {
		if filter.Type != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("ct", "name").EQ(psql.Arg(string(*filter.Type)))))
		}
		if !filter.IncludeInactive {
			queryMods = append(queryMods, sm.Where(psql.Quote("c", "is_active").EQ(psql.Arg(true))))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("c", "name")).Asc(),
		sm.OrderBy(psql.Quote("c", "id")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[CategoryRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Category, len(rows))
	for i, row := range rows {
		result[i] = row.ToCategory()
	}
	return result, nil
}

func (r *Reader) FindTypeByName(ctx context.Context, name TypeName) (*CategoryType, error) {
	type typeRow struct {
		ID          int64  `db:"id"`
		Name        string `db:"name"`
		Description string `db:"description"`
	}
	query := psql.Select(
		sm.Columns("id", "name", "description"),
		sm.From("category_types"),
		sm.Where(psql.Quote("name").EQ(psql.Arg(string(name)))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[typeRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFoundf("category type %s", name)
	}
	if err != nil {
		return nil, err
	}
	return &CategoryType{ID: row.ID, Name: TypeName(row.Name), Description: row.Description}, nil
}
