package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/client/views"
)

var errNotSupported = errors.New("not available on this screen")

// screen is one REPL page backed by a view controller.
type screen interface {
	load(ctx context.Context) error
	render(ctx context.Context, w io.Writer)
	add(ctx context.Context) error
	edit(ctx context.Context, id string) error
	remove(ctx context.Context, ids []string) error
	reset()
}

// form carries the prompt plumbing shared by screens.
type form struct {
	in  *bufio.Reader
	out io.Writer
}

func (f form) ask(prompt string) (string, error) { return GetSimpleText(f.in, prompt, f.out) }

func (f form) askDefault(label, current string) (string, error) {
	return GetWithDefault(f.in, label, current, f.out)
}

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	tw.Flush()
}

type noEdits struct{}

func (noEdits) add(context.Context) error              { return errNotSupported }
func (noEdits) edit(context.Context, string) error     { return errNotSupported }
func (noEdits) remove(context.Context, []string) error { return errNotSupported }

type homeScreen struct {
	noEdits
	v *views.HomeView
}

func (s *homeScreen) load(context.Context) error { return nil }

func (s *homeScreen) render(ctx context.Context, w io.Writer) {
	fmt.Fprintf(w, "Hello, %s!\n", s.v.Greeting(ctx))
	fmt.Fprintln(w, "Screens: categories, entries, goals, users, report")
}

func (s *homeScreen) reset() {}

type categoryScreen struct {
	form
	v *views.CategoryView
}

func (s *categoryScreen) load(ctx context.Context) error { return s.v.Load(ctx) }

func (s *categoryScreen) render(_ context.Context, w io.Writer) {
	table(w, "ID\tNAME\tGOALS", func(tw *tabwriter.Writer) {
		for _, c := range s.v.Items() {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", c.ID, c.Name, len(c.Goals))
		}
	})
}

func (s *categoryScreen) add(ctx context.Context) error {
	name, err := s.ask("Category name")
	if err != nil {
		return err
	}
	return s.v.Create(ctx, name)
}

func (s *categoryScreen) edit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	d, err := s.v.Edit(id)
	if err != nil {
		return err
	}
	if d.Name, err = s.askDefault("Name", d.Name); err != nil {
		s.v.CancelEdit()
		return err
	}
	return s.v.Save(ctx)
}

func (s *categoryScreen) remove(ctx context.Context, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 1 {
		return s.v.Delete(ctx, ids[0])
	}
	return s.v.DeleteMany(ctx, ids)
}

func (s *categoryScreen) reset() { s.v.Reset() }

type entryScreen struct {
	form
	v *views.EntryView
}

func (s *entryScreen) load(ctx context.Context) error { return s.v.Load(ctx) }

func (s *entryScreen) render(_ context.Context, w io.Writer) {
	table(w, "ID\tDATE\tKIND\tAMOUNT\tDESCRIPTION\tGOAL", func(tw *tabwriter.Writer) {
		for _, e := range s.v.Items() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.CreatedAt, e.Kind.Label(), formatAmount(e.Amount), e.Description, s.v.GoalName(e.Goal))
		}
	})
}

func (s *entryScreen) showGoals() {
	var names []string
	for _, g := range s.v.Goals() {
		names = append(names, fmt.Sprintf("%d=%s", g.ID, g.Description))
	}
	if len(names) > 0 {
		fmt.Fprintln(s.out, "Goals:", strings.Join(names, ", "))
	}
}

// fill prompts for every entry field, offering cur as the default.
func (s *entryScreen) fill(cur views.EntryEdit) (views.EntryEdit, error) {
	var err error
	str := func(label, def string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = s.askDefault(label, def)
		return v
	}

	cur.Description = str("Description", cur.Description)
	amount := str("Amount", formatAmount(cur.Amount))
	kind := str("Kind (income/expense)", cur.Kind.Label())
	when := str("Date (2006-01-02 or 2006-01-02T15:04:05)", models.NewTimestamp(cur.When).String())
	s.showGoals()
	goal := str("Goal id", optionalID(cur.Goal))
	if err != nil {
		return cur, err
	}

	if cur.Amount, err = parseAmount(amount); err != nil {
		return cur, err
	}
	if cur.Kind, err = models.ParseEntryKind(kind); err != nil {
		return cur, err
	}
	ts, err := models.ParseTimestamp(when)
	if err != nil {
		return cur, err
	}
	cur.When = ts.Time
	if cur.Goal, err = parseOptionalID(goal); err != nil {
		return cur, err
	}
	return cur, nil
}

func (s *entryScreen) add(ctx context.Context) error {
	e, err := s.fill(views.EntryEdit{Kind: models.EntryExpense, When: time.Now()})
	if err != nil {
		return err
	}
	return s.v.Create(ctx, views.EntryForm{
		Description: e.Description,
		Amount:      e.Amount,
		When:        e.When,
		Kind:        e.Kind,
		Goal:        e.Goal,
	})
}

func (s *entryScreen) edit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	d, err := s.v.Edit(id)
	if err != nil {
		return err
	}
	filled, err := s.fill(*d)
	if err != nil {
		s.v.CancelEdit()
		return err
	}
	*d = filled
	return s.v.Save(ctx)
}

// remove deletes one by one; entries have no batch endpoint.
func (s *entryScreen) remove(ctx context.Context, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.v.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *entryScreen) reset() { s.v.Reset() }

type goalScreen struct {
	form
	v *views.GoalView
}

func (s *goalScreen) load(ctx context.Context) error { return s.v.Load(ctx) }

func (s *goalScreen) render(_ context.Context, w io.Writer) {
	table(w, "ID\tDESCRIPTION\tCURRENT\tFROM\tTO\tCATEGORY", func(tw *tabwriter.Writer) {
		for _, g := range s.v.Items() {
			cur := "-"
			if g.CurrentValue != nil {
				cur = formatAmount(*g.CurrentValue)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				g.ID, g.Description, cur, g.StartDate, g.EndDate, s.v.CategoryName(g.Category))
		}
	})
}

func (s *goalScreen) fill(cur views.GoalForm) (views.GoalForm, error) {
	var err error
	str := func(label, def string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = s.askDefault(label, def)
		return v
	}

	curValue := ""
	if cur.CurrentValue != nil {
		curValue = formatAmount(*cur.CurrentValue)
	}
	cur.Description = str("Description", cur.Description)
	value := str("Current value (empty for none)", curValue)
	cur.StartDate = str("Start date (2006-01-02)", cur.StartDate)
	cur.EndDate = str("End date (2006-01-02)", cur.EndDate)
	var names []string
	for _, c := range s.v.Categories() {
		names = append(names, fmt.Sprintf("%d=%s", c.ID, c.Name))
	}
	if len(names) > 0 {
		fmt.Fprintln(s.out, "Categories:", strings.Join(names, ", "))
	}
	category := str("Category id", optionalID(cur.Category))
	if err != nil {
		return cur, err
	}

	cur.CurrentValue = nil
	if value != "" {
		v, err := parseAmount(value)
		if err != nil {
			return cur, err
		}
		cur.CurrentValue = &v
	}
	if cur.Category, err = parseOptionalID(category); err != nil {
		return cur, err
	}
	return cur, nil
}

func (s *goalScreen) add(ctx context.Context) error {
	f, err := s.fill(views.GoalForm{})
	if err != nil {
		return err
	}
	return s.v.Create(ctx, f)
}

func (s *goalScreen) edit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	d, err := s.v.Edit(id)
	if err != nil {
		return err
	}
	f, err := s.fill(d.GoalForm)
	if err != nil {
		s.v.CancelEdit()
		return err
	}
	d.GoalForm = f
	return s.v.Save(ctx)
}

func (s *goalScreen) remove(ctx context.Context, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 1 {
		return s.v.Delete(ctx, ids[0])
	}
	return s.v.DeleteMany(ctx, ids)
}

func (s *goalScreen) reset() { s.v.Reset() }

type userScreen struct {
	form
	v *views.UserView
}

func (s *userScreen) load(ctx context.Context) error { return s.v.Load(ctx) }

func (s *userScreen) render(_ context.Context, w io.Writer) {
	table(w, "ID\tUSERNAME\tROLE", func(tw *tabwriter.Writer) {
		for _, u := range s.v.Items() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Username, u.Role)
		}
	})
}

func (s *userScreen) add(context.Context) error {
	return fmt.Errorf("users sign up themselves: %w", errNotSupported)
}

func (s *userScreen) edit(ctx context.Context, arg string) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return fmt.Errorf("%q is not a valid user id", arg)
	}
	d, err := s.v.Edit(id)
	if err != nil {
		return err
	}
	if d.Username, err = s.askDefault("Username", d.Username); err == nil {
		d.Password, err = GetPassword(s.in, "New password (empty keeps the current one)", s.out)
	}
	var role string
	if err == nil {
		role, err = s.askDefault("Role (user/admin)", d.Role.String())
	}
	if err == nil {
		d.Role, err = models.ParseRole(role)
	}
	if err != nil {
		s.v.CancelEdit()
		return err
	}
	return s.v.Save(ctx)
}

func (s *userScreen) remove(ctx context.Context, args []string) error {
	ids := make([]uuid.UUID, 0, len(args))
	for _, a := range args {
		id, err := uuid.Parse(a)
		if err != nil {
			return fmt.Errorf("%q is not a valid user id", a)
		}
		ids = append(ids, id)
	}
	if len(ids) == 1 {
		return s.v.Delete(ctx, ids[0])
	}
	return s.v.DeleteMany(ctx, ids)
}

func (s *userScreen) reset() { s.v.Reset() }

type reportScreen struct {
	noEdits
	v *views.ReportView
}

func (s *reportScreen) load(ctx context.Context) error { return s.v.Load(ctx) }

func (s *reportScreen) render(_ context.Context, w io.Writer) {
	fmt.Fprintln(w, "Totals by category")
	table(w, "CATEGORY\tAMOUNT", func(tw *tabwriter.Writer) {
		for _, t := range s.v.Totals() {
			fmt.Fprintf(tw, "%s\t%s\n", t.Category, formatAmount(t.Amount))
		}
	})
	fmt.Fprintln(w, "\nCash flow")
	table(w, "PERIOD\tINCOME\tEXPENSES\tNET", func(tw *tabwriter.Writer) {
		for _, f := range s.v.CashFlow() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Period, formatAmount(f.Income), formatAmount(f.Expenses), formatAmount(f.Net))
		}
	})
	fmt.Fprintf(w, "Balance: %s\n", formatAmount(s.v.Balance()))
}

func (s *reportScreen) reset() { s.v.Reset() }
