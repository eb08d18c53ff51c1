package views

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/client/state"
)

const maxGoalDescription = 45

type GoalForm struct {
	Description  string
	CurrentValue *float64
	StartDate    string
	EndDate      string
	Category     int64
}

type GoalEdit struct {
	ID int64
	GoalForm
}

type GoalView struct {
	listView[models.Goal]
	api        GoalAPI
	catAPI     CategoryAPI
	categories *state.Slot[models.Category]
	draft      *GoalEdit
	original   GoalEdit
}

func NewGoalView(d Deps, api GoalAPI, categories CategoryAPI) *GoalView {
	return &GoalView{
		listView:   newListView[models.Goal](d, "goals"),
		api:        api,
		catAPI:     categories,
		categories: &state.Slot[models.Category]{},
	}
}

// Load fetches goals and, alongside, the categories they belong to.
func (v *GoalView) Load(ctx context.Context) error {
	id, err := v.identity(ctx)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return v.reloadWith(ctx, func(ctx context.Context) ([]models.Goal, error) {
			return v.api.ListByOwner(ctx, id)
		})
	})
	g.Go(func() error {
		_, err := v.categories.Reload(ctx, func(ctx context.Context) ([]models.Category, error) {
			return v.catAPI.ListByOwner(ctx, id)
		})
		if err != nil {
			v.fail(ctx, "load categories", err)
		}
		return err
	})
	return g.Wait()
}

func (v *GoalView) Categories() []models.Category { return v.categories.Items() }

func (v *GoalView) CategoryName(id int64) string {
	if c, ok := v.categories.Find(func(c models.Category) bool { return c.ID == id }); ok {
		return c.Name
	}
	return fmt.Sprintf("#%d", id)
}

func validateGoal(f GoalForm) error {
	if err := required("description", f.Description); err != nil {
		return err
	}
	if len([]rune(f.Description)) > maxGoalDescription {
		return invalid("description", fmt.Sprintf("must be at most %d characters", maxGoalDescription))
	}
	if f.CurrentValue != nil && *f.CurrentValue < 0 {
		return invalid("current value", "cannot be negative")
	}
	for _, d := range []struct{ field, value string }{{"start date", f.StartDate}, {"end date", f.EndDate}} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, d.value); err != nil {
			return invalid(d.field, "must look like 2025-12-31")
		}
	}
	if f.StartDate != "" && f.EndDate != "" && f.EndDate < f.StartDate {
		return invalid("end date", "is before start date")
	}
	if f.Category <= 0 {
		return invalid("category", "is required")
	}
	return nil
}

func (v *GoalView) Create(ctx context.Context, f GoalForm) error {
	if err := validateGoal(f); err != nil {
		v.Notify.Error(ctx, err.Error())
		return err
	}
	id, err := v.identity(ctx)
	if err != nil {
		return err
	}
	draft := models.GoalDraft{
		Description:  f.Description,
		CurrentValue: f.CurrentValue,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Category:     f.Category,
		Username:     id,
	}
	return v.mutate(ctx, "create goal", "Goal created.", func(ctx context.Context) error {
		_, err := v.api.Create(ctx, draft)
		return err
	}, v.Load)
}

func (v *GoalView) Edit(id int64) (*GoalEdit, error) {
	g, ok := v.list.Find(func(g models.Goal) bool { return g.ID == id })
	if !ok {
		return nil, fmt.Errorf("goal %d: %w", id, ErrNotInList)
	}
	edit := GoalEdit{ID: g.ID, GoalForm: GoalForm{
		Description: g.Description,
		StartDate:   g.StartDate,
		EndDate:     g.EndDate,
		Category:    g.Category,
	}}
	v.original = edit
	if g.CurrentValue != nil {
		edit.CurrentValue = models.Ptr(*g.CurrentValue)
		v.original.CurrentValue = models.Ptr(*g.CurrentValue)
	}
	v.draft = &edit
	return v.draft, nil
}

func (v *GoalView) Draft() *GoalEdit { return v.draft }

func (v *GoalView) CancelEdit() { v.draft = nil }

func sameValue(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (v *GoalView) Save(ctx context.Context) error {
	d := v.draft
	if d == nil {
		return ErrNoDraft
	}
	if err := validateGoal(d.GoalForm); err != nil {
		v.Notify.Error(ctx, err.Error())
		return err
	}

	o := v.original
	// a patch can set the value but has no way to unset it
	if d.CurrentValue == nil && o.CurrentValue != nil {
		err := invalid("current value", "cannot be cleared")
		v.Notify.Error(ctx, err.Error())
		return err
	}
	var p models.GoalPatch
	if d.Description != o.Description {
		p.Description = models.Ptr(d.Description)
	}
	if !sameValue(d.CurrentValue, o.CurrentValue) {
		p.CurrentValue = models.Ptr(*d.CurrentValue)
	}
	if d.StartDate != o.StartDate {
		p.StartDate = models.Ptr(d.StartDate)
	}
	if d.EndDate != o.EndDate {
		p.EndDate = models.Ptr(d.EndDate)
	}
	if d.Category != o.Category {
		p.Category = models.Ptr(d.Category)
	}
	if p == (models.GoalPatch{}) {
		v.draft = nil
		v.Notify.Success(ctx, "Nothing to save.")
		return nil
	}

	return v.mutate(ctx, "update goal", "Goal updated.", func(ctx context.Context) error {
		if _, err := v.api.Update(ctx, d.ID, p); err != nil {
			return err
		}
		v.draft = nil
		return nil
	}, v.Load)
}

func (v *GoalView) Delete(ctx context.Context, id int64) error {
	label := fmt.Sprintf("#%d", id)
	if g, ok := v.list.Find(func(g models.Goal) bool { return g.ID == id }); ok {
		label = fmt.Sprintf("%q", g.Description)
	}
	if ok, err := v.confirmed(ctx, "Delete goal "+label+"?"); !ok {
		return err
	}
	return v.mutate(ctx, "delete goal", "Goal deleted.", func(ctx context.Context) error {
		return v.api.Delete(ctx, id)
	}, v.Load)
}

func (v *GoalView) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if ok, err := v.confirmed(ctx, fmt.Sprintf("Delete %d goals?", len(ids))); !ok {
		return err
	}
	return v.mutate(ctx, "delete goals", "Goals deleted.", func(ctx context.Context) error {
		return v.api.DeleteBatch(ctx, ids)
	}, v.Load)
}

func (v *GoalView) Reset() {
	v.list.Reset()
	v.categories.Reset()
	v.draft = nil
}
