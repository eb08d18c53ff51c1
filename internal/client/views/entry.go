package views

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/client/state"
)

// EntryForm is the input of a new entry.
type EntryForm struct {
	Description string
	Amount      float64
	When        time.Time
	Kind        models.EntryKind
	Goal        int64
}

// EntryEdit is the draft of an entry being edited. When is parsed from the
// stored timestamp when the edit starts.
type EntryEdit struct {
	ID          int64
	Description string
	Amount      float64
	When        time.Time
	Kind        models.EntryKind
	Goal        int64
}

type EntryView struct {
	listView[models.Entry]
	api      EntryAPI
	goalAPI  GoalAPI
	goals    *state.Slot[models.Goal]
	draft    *EntryEdit
	original EntryEdit
}

func NewEntryView(d Deps, api EntryAPI, goals GoalAPI) *EntryView {
	return &EntryView{
		listView: newListView[models.Entry](d, "entries"),
		api:      api,
		goalAPI:  goals,
		goals:    &state.Slot[models.Goal]{},
	}
}

// Load fetches entries and, alongside, the goals used to label them.
func (v *EntryView) Load(ctx context.Context) error {
	id, err := v.identity(ctx)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return v.reloadWith(ctx, func(ctx context.Context) ([]models.Entry, error) {
			return v.api.ListByOwner(ctx, id)
		})
	})
	g.Go(func() error {
		_, err := v.goals.Reload(ctx, func(ctx context.Context) ([]models.Goal, error) {
			return v.goalAPI.ListByOwner(ctx, id)
		})
		if err != nil {
			v.fail(ctx, "load goals", err)
		}
		return err
	})
	return g.Wait()
}

func (v *EntryView) Goals() []models.Goal { return v.goals.Items() }

// GoalName labels an entry's goal; unknown ids show as "#id".
func (v *EntryView) GoalName(id *int64) string {
	if id == nil {
		return "-"
	}
	if g, ok := v.goals.Find(func(g models.Goal) bool { return g.ID == *id }); ok {
		return g.Description
	}
	return fmt.Sprintf("#%d", *id)
}

func validateEntry(desc string, amount float64, kind models.EntryKind, goal int64) error {
	if err := required("description", desc); err != nil {
		return err
	}
	if amount == 0 {
		return invalid("amount", "must not be zero")
	}
	if kind != models.EntryIncome && kind != models.EntryExpense {
		return invalid("kind", fmt.Sprintf("must be %s or %s", models.EntryIncome, models.EntryExpense))
	}
	if goal <= 0 {
		return invalid("goal", "is required")
	}
	return nil
}

func (v *EntryView) Create(ctx context.Context, f EntryForm) error {
	if err := validateEntry(f.Description, f.Amount, f.Kind, f.Goal); err != nil {
		v.Notify.Error(ctx, err.Error())
		return err
	}
	if f.When.IsZero() {
		f.When = time.Now()
	}
	draft := models.EntryDraft{
		Description: f.Description,
		Amount:      f.Amount,
		CreatedAt:   models.NewTimestamp(f.When),
		Kind:        f.Kind,
		Goal:        f.Goal,
	}
	return v.mutate(ctx, "create entry", "Entry created.", func(ctx context.Context) error {
		_, err := v.api.Create(ctx, draft)
		return err
	}, v.Load)
}

// Edit starts editing id, replacing any unsaved draft.
func (v *EntryView) Edit(id int64) (*EntryEdit, error) {
	e, ok := v.list.Find(func(e models.Entry) bool { return e.ID == id })
	if !ok {
		return nil, fmt.Errorf("entry %d: %w", id, ErrNotInList)
	}
	when, err := models.ParseTimestamp(e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", id, err)
	}
	edit := EntryEdit{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		When:        when.Time,
		Kind:        e.Kind,
	}
	if e.Goal != nil {
		edit.Goal = *e.Goal
	}
	v.original = edit
	v.draft = &edit
	return v.draft, nil
}

func (v *EntryView) Draft() *EntryEdit { return v.draft }

func (v *EntryView) CancelEdit() { v.draft = nil }

func (v *EntryView) Save(ctx context.Context) error {
	d := v.draft
	if d == nil {
		return ErrNoDraft
	}
	if err := validateEntry(d.Description, d.Amount, d.Kind, d.Goal); err != nil {
		v.Notify.Error(ctx, err.Error())
		return err
	}

	o := v.original
	var p models.EntryPatch
	changed := false
	if d.Description != o.Description {
		p.Description, changed = models.Ptr(d.Description), true
	}
	if d.Amount != o.Amount {
		p.Amount, changed = models.Ptr(d.Amount), true
	}
	if models.NewTimestamp(d.When).String() != models.NewTimestamp(o.When).String() {
		p.CreatedAt, changed = models.Ptr(models.NewTimestamp(d.When)), true
	}
	if d.Kind != o.Kind {
		p.Kind, changed = models.Ptr(d.Kind), true
	}
	if d.Goal != o.Goal {
		p.Goal, changed = models.Ptr(d.Goal), true
	}
	if !changed {
		v.draft = nil
		v.Notify.Success(ctx, "Nothing to save.")
		return nil
	}

	return v.mutate(ctx, "update entry", "Entry updated.", func(ctx context.Context) error {
		if _, err := v.api.Update(ctx, d.ID, p); err != nil {
			return err
		}
		v.draft = nil
		return nil
	}, v.Load)
}

func (v *EntryView) Delete(ctx context.Context, id int64) error {
	label := fmt.Sprintf("#%d", id)
	if e, ok := v.list.Find(func(e models.Entry) bool { return e.ID == id }); ok {
		label = fmt.Sprintf("%q", e.Description)
	}
	if ok, err := v.confirmed(ctx, "Delete entry "+label+"?"); !ok {
		return err
	}
	return v.mutate(ctx, "delete entry", "Entry deleted.", func(ctx context.Context) error {
		return v.api.Delete(ctx, id)
	}, v.Load)
}

func (v *EntryView) Reset() {
	v.list.Reset()
	v.goals.Reset()
	v.draft = nil
}
