package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/client/state"
)

// ReportView shows per-category totals and the monthly cash flow.
type ReportView struct {
	listView[models.CategoryTotal]
	api  ReportAPI
	flow *state.Slot[models.CashFlow]
}

func NewReportView(d Deps, api ReportAPI) *ReportView {
	return &ReportView{
		listView: newListView[models.CategoryTotal](d, "report"),
		api:      api,
		flow:     &state.Slot[models.CashFlow]{},
	}
}

// Load fetches both reports at once. Either may fail on its own; the other
// is still shown.
func (v *ReportView) Load(ctx context.Context) error {
	id, err := v.identity(ctx)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return v.reloadWith(ctx, func(ctx context.Context) ([]models.CategoryTotal, error) {
			return v.api.CategoryTotals(ctx, id)
		})
	})
	g.Go(func() error {
		_, err := v.flow.Reload(ctx, func(ctx context.Context) ([]models.CashFlow, error) {
			return v.api.CashFlowHistory(ctx, id)
		})
		if err != nil {
			v.fail(ctx, "load cash flow", err)
		}
		return err
	})
	return g.Wait()
}

func (v *ReportView) Totals() []models.CategoryTotal { return v.Items() }

func (v *ReportView) CashFlow() []models.CashFlow { return v.flow.Items() }

// Balance sums the net of every period.
func (v *ReportView) Balance() float64 {
	var sum float64
	for _, f := range v.flow.Items() {
		sum += f.Net
	}
	return sum
}

func (v *ReportView) Reset() {
	v.list.Reset()
	v.flow.Reset()
}
