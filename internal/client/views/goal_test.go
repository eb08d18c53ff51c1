package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

func loadedGoalView(t *testing.T) (*env, *fakeGoals, *GoalView) {
	t.Helper()
	e, d := newEnv()
	goals := &fakeGoals{items: []models.Goal{
		{ID: 7, Description: "Savings", CurrentValue: models.Ptr(100.0), StartDate: "2025-01-01", EndDate: "2025-12-31", Category: 1},
		{ID: 8, Description: "Trip", Category: 2},
	}}
	cats := &fakeCategories{items: []models.Category{{ID: 1, Name: "Food"}}}
	v := NewGoalView(d, goals, cats)
	require.NoError(t, v.Load(context.Background()))
	return e, goals, v
}

func TestGoalView_Load(t *testing.T) {
	_, _, v := loadedGoalView(t)
	assert.Len(t, v.Items(), 2)
	assert.Equal(t, "Food", v.CategoryName(1))
	assert.Equal(t, "#2", v.CategoryName(2))
}

func TestValidateGoal(t *testing.T) {
	ok := GoalForm{Description: "Savings", StartDate: "2025-01-01", EndDate: "2025-06-30", Category: 1}
	require.NoError(t, validateGoal(ok))

	cases := map[string]struct {
		mutate func(*GoalForm)
		field  string
	}{
		"no description":   {func(f *GoalForm) { f.Description = "" }, "description"},
		"long description": {func(f *GoalForm) { f.Description = string(make([]rune, 46)) }, "description"},
		"negative value":   {func(f *GoalForm) { f.CurrentValue = models.Ptr(-1.0) }, "current value"},
		"bad start":        {func(f *GoalForm) { f.StartDate = "01/01/2025" }, "start date"},
		"bad end":          {func(f *GoalForm) { f.EndDate = "soon" }, "end date"},
		"end before start": {func(f *GoalForm) { f.EndDate = "2024-12-31" }, "end date"},
		"no category":      {func(f *GoalForm) { f.Category = 0 }, "category"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := ok
			tc.mutate(&f)
			var ve *ValidationError
			require.ErrorAs(t, validateGoal(f), &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestGoalView_CreateCarriesOwner(t *testing.T) {
	_, goals, v := loadedGoalView(t)

	require.NoError(t, v.Create(context.Background(), GoalForm{Description: "Car", Category: 1}))
	require.Len(t, goals.created, 1)
	assert.Equal(t, "ana@example.com", goals.created[0].Username)
}

func TestGoalView_SaveSendsChangedFields(t *testing.T) {
	_, goals, v := loadedGoalView(t)

	d, err := v.Edit(7)
	require.NoError(t, err)
	*d.CurrentValue = 250
	d.Category = 2
	require.NoError(t, v.Save(context.Background()))

	require.Len(t, goals.patches, 1)
	p := goals.patches[0]
	assert.Equal(t, 250.0, *p.CurrentValue)
	assert.Equal(t, int64(2), *p.Category)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.StartDate)
	assert.Equal(t, 100.0, *v.Items()[0].CurrentValue, "the list is not touched by the draft")
}

func TestGoalView_SaveRejectsClearedValue(t *testing.T) {
	e, goals, v := loadedGoalView(t)

	d, err := v.Edit(7)
	require.NoError(t, err)
	d.CurrentValue = nil
	d.Description = "Rainy day"

	var ve *ValidationError
	require.ErrorAs(t, v.Save(context.Background()), &ve)
	assert.Equal(t, "current value", ve.Field)
	assert.Zero(t, goals.calls)
	assert.Equal(t, []string{"current value: cannot be cleared"}, e.notify.failures)
	assert.Same(t, d, v.Draft(), "the draft is kept for correction")
}

func TestGoalView_DeleteMany(t *testing.T) {
	e, goals, v := loadedGoalView(t)

	e.confirm.answer = false
	require.NoError(t, v.DeleteMany(context.Background(), []int64{7, 8}))
	assert.Zero(t, goals.calls)

	e.confirm.answer = true
	require.NoError(t, v.DeleteMany(context.Background(), []int64{7, 8}))
	assert.Equal(t, [][]int64{{7, 8}}, goals.batches)
	assert.Contains(t, e.notify.success, "Goals deleted.")
}
