package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

// CategoryEdit is the draft of a category being edited.
type CategoryEdit struct {
	ID   int64
	Name string
}

type CategoryView struct {
	listView[models.Category]
	api      CategoryAPI
	draft    *CategoryEdit
	original models.Category
}

func NewCategoryView(d Deps, api CategoryAPI) *CategoryView {
	return &CategoryView{listView: newListView[models.Category](d, "categories"), api: api}
}

func (v *CategoryView) Load(ctx context.Context) error {
	return v.reload(ctx, v.api.ListByOwner)
}

// Create adds a category owned by the signed-in user. Names need not be
// unique.
func (v *CategoryView) Create(ctx context.Context, name string) error {
	if err := required("name", name); err != nil {
		v.Notify.Error(ctx, err.Error())
		return err
	}
	id, err := v.identity(ctx)
	if err != nil {
		return err
	}
	return v.mutate(ctx, "create category", "Category created.", func(ctx context.Context) error {
		_, err := v.api.Create(ctx, models.CategoryDraft{Name: name, Username: id})
		return err
	}, v.Load)
}

// Edit starts editing id, replacing any unsaved draft.
func (v *CategoryView) Edit(id int64) (*CategoryEdit, error) {
	c, ok := v.list.Find(func(c models.Category) bool { return c.ID == id })
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotInList)
	}
	v.original = c
	v.draft = &CategoryEdit{ID: c.ID, Name: c.Name}
	return v.draft, nil
}

// Draft is the current edit, nil when none.
func (v *CategoryView) Draft() *CategoryEdit { return v.draft }

func (v *CategoryView) CancelEdit() { v.draft = nil }

// Save sends the fields that differ from the record being edited.
func (v *CategoryView) Save(ctx context.Context) error {
	d := v.draft
	if d == nil {
		return ErrNoDraft
	}
	var p models.CategoryPatch
	if d.Name != v.original.Name {
		if err := required("name", d.Name); err != nil {
			v.Notify.Error(ctx, err.Error())
			return err
		}
		p.Name = models.Ptr(d.Name)
	}
	if p == (models.CategoryPatch{}) {
		v.draft = nil
		v.Notify.Success(ctx, "Nothing to save.")
		return nil
	}
	return v.mutate(ctx, "update category", "Category updated.", func(ctx context.Context) error {
		if _, err := v.api.Update(ctx, d.ID, p); err != nil {
			return err
		}
		v.draft = nil
		return nil
	}, v.Load)
}

// Delete removes id after confirmation. A declined confirmation sends
// nothing.
func (v *CategoryView) Delete(ctx context.Context, id int64) error {
	label := fmt.Sprintf("#%d", id)
	if c, ok := v.list.Find(func(c models.Category) bool { return c.ID == id }); ok {
		label = fmt.Sprintf("%q", c.Name)
	}
	if ok, err := v.confirmed(ctx, "Delete category "+label+" and its goals?"); !ok {
		return err
	}
	return v.mutate(ctx, "delete category", "Category deleted.", func(ctx context.Context) error {
		return v.api.Delete(ctx, id)
	}, v.Load)
}

// DeleteMany removes several categories in one request after one
// confirmation.
func (v *CategoryView) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if ok, err := v.confirmed(ctx, fmt.Sprintf("Delete %d categories and their goals?", len(ids))); !ok {
		return err
	}
	return v.mutate(ctx, "delete categories", "Categories deleted.", func(ctx context.Context) error {
		return v.api.DeleteBatch(ctx, ids)
	}, v.Load)
}

func (v *CategoryView) Reset() {
	v.list.Reset()
	v.draft = nil
}
