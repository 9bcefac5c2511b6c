package memory

import (
	"context"
	"sort"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

var _ category.ICategoryReader = (*Categories)(nil)

type Categories struct {
	v view
}

func (d *dataset) categoryWithType(id int64) *category.Category {
	c, ok := d.categories[id]
	if !ok {
		return nil
	}
	cp := *c
	if t, ok := d.types[c.TypeID]; ok {
		tp := *t
		cp.Type = &tp
	}
	return &cp
}

func (d *dataset) subcategoryWithParents(id int64) *category.Subcategory {
	s, ok := d.subcategories[id]
	if !ok {
		return nil
	}
	cp := *s
	cp.Category = d.categoryWithType(s.CategoryID)
	return &cp
}

func (c *Categories) FindSubcategory(_ context.Context, id int64) (*category.Subcategory, error) {
	var result *category.Subcategory
	err := c.v.with(func(d *dataset) error {
		result = d.subcategoryWithParents(id)
		if result == nil {
			return errs.NotFound("subcategory", id)
		}
		return nil
	})
	return result, err
}

func (c *Categories) FindTypeByName(_ context.Context, name category.TypeName) (*category.CategoryType, error) {
	var result *category.CategoryType
	err := c.v.with(func(d *dataset) error {
		for _, t := range d.types {
			if t.Name == name {
				cp := *t
				result = &cp
				return nil
			}
		}
		return errs.NotFoundf("category type %s", name)
	})
	return result, err
}

func (c *Categories) ListCategories(_ context.Context, filter *category.CategoryFilter) ([]*category.Category, error) {
	var result []*category.Category
	err := c.v.with(func(d *dataset) error {
		for id := range d.categories {
			cat := d.categoryWithType(id)
			if filter != nil {
				if filter.Type != nil && (cat.Type == nil || cat.Type.Name != *filter.Type) {
					continue
				}
				if !filter.IncludeInactive && !cat.Status.IsActive() {
					continue
				}
			}
			result = append(result, cat)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, err
}

func (c *Categories) ListSubcategories(_ context.Context, filter *category.SubcategoryFilter) ([]*category.Subcategory, error) {
	var result []*category.Subcategory
	err := c.v.with(func(d *dataset) error {
		for id := range d.subcategories {
			sub := d.subcategoryWithParents(id)
			if filter != nil {
				if filter.CategoryID != nil && sub.CategoryID != *filter.CategoryID {
					continue
				}
				if !filter.IncludeInactive && !sub.Status.IsActive() {
					continue
				}
			}
			result = append(result, sub)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, err
}

var _ user.IUserReader = (*Users)(nil)

type Users struct {
	v view
}

func (u *Users) FindByID(_ context.Context, id int64) (*user.User, error) {
	var result *user.User
	err := u.v.with(func(d *dataset) error {
		found, ok := d.users[id]
		if !ok {
			return errs.NotFound("user", id)
		}
		cp := *found
		result = &cp
		return nil
	})
	return result, err
}
