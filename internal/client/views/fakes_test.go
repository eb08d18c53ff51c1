package views

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophfinance/internal/client/guard"
	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

var errBoom = errors.New("boom")

type fakeNotifier struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (n *fakeNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *fakeNotifier) Error(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

type fakeConfirm struct {
	answer bool
	asked  []string
}

func (c *fakeConfirm) Confirm(_ context.Context, prompt string) bool {
	c.asked = append(c.asked, prompt)
	return c.answer
}

type fakeSession struct {
	identity string
	username string
	token    string
	setErr   error
	clearErr error
}

func (s *fakeSession) Identity(context.Context) (string, bool) { return s.identity, s.identity != "" }
func (s *fakeSession) Username(context.Context) (string, bool) { return s.username, s.username != "" }

func (s *fakeSession) SetToken(_ context.Context, token string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.token = token
	return nil
}

func (s *fakeSession) Clear(context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token, s.identity, s.username = "", "", ""
	return nil
}

type fakeNav struct{ routes []guard.Route }

func (n *fakeNav) Navigate(_ context.Context, r guard.Route) { n.routes = append(n.routes, r) }

type env struct {
	notify  *fakeNotifier
	confirm *fakeConfirm
	session *fakeSession
	nav     *fakeNav
}

func newEnv() (*env, Deps) {
	e := &env{
		notify:  &fakeNotifier{},
		confirm: &fakeConfirm{answer: true},
		session: &fakeSession{identity: "ana@example.com"},
		nav:     &fakeNav{},
	}
	return e, Deps{
		Session: e.session,
		Notify:  e.notify,
		Confirm: e.confirm,
		Nav:     e.nav,
		Log:     logging.Nop(),
	}
}

type fakeAuth struct {
	calls int
	token string
	err   error
}

func (a *fakeAuth) Login(context.Context, string, string) (string, error) {
	a.calls++
	return a.token, a.err
}

func (a *fakeAuth) Register(context.Context, string, string) (string, error) {
	a.calls++
	return a.token, a.err
}

type fakeCategories struct {
	items     []models.Category
	listErr   error
	err       error
	calls     int
	lastOwner string
	created   []models.CategoryDraft
	patches   []models.CategoryPatch
	deleted   []int64
}

func (f *fakeCategories) ListByOwner(_ context.Context, owner string) ([]models.Category, error) {
	f.lastOwner = owner
	return append([]models.Category(nil), f.items...), f.listErr
}

func (f *fakeCategories) Create(_ context.Context, d models.CategoryDraft) (models.Category, error) {
	f.calls++
	if f.err != nil {
		return models.Category{}, f.err
	}
	f.created = append(f.created, d)
	c := models.Category{ID: int64(len(f.items) + 1), Name: d.Name, Owner: d.Username}
	f.items = append(f.items, c)
	return c, nil
}

func (f *fakeCategories) Update(_ context.Context, id int64, p models.CategoryPatch) (models.Category, error) {
	f.calls++
	if f.err != nil {
		return models.Category{}, f.err
	}
	f.patches = append(f.patches, p)
	for i := range f.items {
		if f.items[i].ID == id && p.Name != nil {
			f.items[i].Name = *p.Name
		}
	}
	return models.Category{ID: id}, nil
}

func (f *fakeCategories) Delete(_ context.Context, id int64) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	var out []models.Category
	for _, c := range f.items {
		if c.ID != id {
			out = append(out, c)
		}
	}
	f.items = out
	return nil
}

func (f *fakeCategories) DeleteBatch(ctx context.Context, ids []int64) error {
	if f.err != nil {
		f.calls++
		return f.err
	}
	for _, id := range ids {
		if err := f.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type fakeEntries struct {
	items   []models.Entry
	listErr error
	err     error
	calls   int
	created []models.EntryDraft
	patches []models.EntryPatch
}

func (f *fakeEntries) ListByOwner(context.Context, string) ([]models.Entry, error) {
	return f.items, f.listErr
}

func (f *fakeEntries) Create(_ context.Context, d models.EntryDraft) (models.Entry, error) {
	f.calls++
	if f.err != nil {
		return models.Entry{}, f.err
	}
	f.created = append(f.created, d)
	e := models.Entry{ID: int64(len(f.items) + 1), Description: d.Description, Amount: d.Amount, Kind: d.Kind, CreatedAt: d.CreatedAt.String(), Goal: models.Ptr(d.Goal)}
	f.items = append(f.items, e)
	return e, nil
}

func (f *fakeEntries) Update(_ context.Context, id int64, p models.EntryPatch) (models.Entry, error) {
	f.calls++
	if f.err != nil {
		return models.Entry{}, f.err
	}
	f.patches = append(f.patches, p)
	return models.Entry{ID: id}, nil
}

func (f *fakeEntries) Delete(context.Context, int64) error {
	f.calls++
	return f.err
}

type fakeGoals struct {
	items   []models.Goal
	listErr error
	err     error
	calls   int
	created []models.GoalDraft
	patches []models.GoalPatch
	batches [][]int64
}

func (f *fakeGoals) ListByOwner(context.Context, string) ([]models.Goal, error) {
	return f.items, f.listErr
}

func (f *fakeGoals) Create(_ context.Context, d models.GoalDraft) (models.Goal, error) {
	f.calls++
	if f.err != nil {
		return models.Goal{}, f.err
	}
	f.created = append(f.created, d)
	return models.Goal{Description: d.Description}, nil
}

func (f *fakeGoals) Update(_ context.Context, id int64, p models.GoalPatch) (models.Goal, error) {
	f.calls++
	if f.err != nil {
		return models.Goal{}, f.err
	}
	f.patches = append(f.patches, p)
	return models.Goal{ID: id}, nil
}

func (f *fakeGoals) Delete(context.Context, int64) error {
	f.calls++
	return f.err
}

func (f *fakeGoals) DeleteBatch(_ context.Context, ids []int64) error {
	f.calls++
	f.batches = append(f.batches, ids)
	return f.err
}

type fakeUsers struct {
	items   []models.User
	err     error
	lists   int
	calls   int
	updated []string
	patches []models.UserPatch
	deleted []uuid.UUID
	batches [][]uuid.UUID
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	f.lists++
	return f.items, nil
}

func (f *fakeUsers) UpdateByUsername(_ context.Context, username string, p models.UserPatch) (models.User, error) {
	f.calls++
	if f.err != nil {
		return models.User{}, f.err
	}
	f.updated = append(f.updated, username)
	f.patches = append(f.patches, p)
	return models.User{Username: username}, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	f.calls++
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeUsers) DeleteBatch(_ context.Context, ids []uuid.UUID) error {
	f.calls++
	f.batches = append(f.batches, ids)
	return f.err
}

type fakeReports struct {
	totals    []models.CategoryTotal
	flow      []models.CashFlow
	totalsErr error
	flowErr   error
}

func (f *fakeReports) CategoryTotals(context.Context, string) ([]models.CategoryTotal, error) {
	return f.totals, f.totalsErr
}

func (f *fakeReports) CashFlowHistory(context.Context, string) ([]models.CashFlow, error) {
	return f.flow, f.flowErr
}
