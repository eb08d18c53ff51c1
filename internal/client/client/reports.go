package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

type Reports struct {
	c *HTTPClient
}

func NewReports(c *HTTPClient) *Reports {
	return &Reports{c: c}
}

// CategoryTotals returns, per category of identity, the sum of its goals'
// current values.
func (r *Reports) CategoryTotals(ctx context.Context, identity string) ([]models.CategoryTotal, error) {
	if identity == "" {
		return nil, ErrNoIdentity
	}
	var out []models.CategoryTotal
	req := request{method: http.MethodGet, path: []string{CategoriesPath, "u", identity, "total"}}
	if err := r.c.do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	return out, nil
}

// CashFlowHistory returns monthly income/expense totals, oldest first.
func (r *Reports) CashFlowHistory(ctx context.Context, identity string) ([]models.CashFlow, error) {
	if identity == "" {
		return nil, ErrNoIdentity
	}
	var out []models.CashFlow
	req := request{method: http.MethodGet, path: []string{EntriesPath, "fluxo-caixa", "historico", identity}}
	if err := r.c.do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("cash flow history: %w", err)
	}
	return out, nil
}
