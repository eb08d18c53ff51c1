package devbackend

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/common"
)

const maxGoalDescription = 45

type userRow struct {
	models.User
	hash []byte
}

type goalRow struct {
	models.Goal
	owner string
}

type entryRow struct {
	models.Entry
	owner string
}

// store is the backend state. Every exported-to-handler method takes the
// lock; helpers suffixed with Locked expect it held.
type store struct {
	mu         sync.Mutex
	bcryptCost int

	users      map[uuid.UUID]*userRow
	categories map[int64]*models.Category
	goals      map[int64]*goalRow
	entries    map[int64]*entryRow
	nextID     int64
}

func newStore(bcryptCost int) *store {
	return &store{
		bcryptCost: bcryptCost,
		users:      make(map[uuid.UUID]*userRow),
		categories: make(map[int64]*models.Category),
		goals:      make(map[int64]*goalRow),
		entries:    make(map[int64]*entryRow),
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

// users

func validEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@")
}

func (s *store) userByNameLocked(username string) *userRow {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (s *store) register(email, password string, role models.Role) (models.User, error) {
	if !validEmail(email) {
		return models.User{}, invalidf("invalid email %q", email)
	}
	if len(password) < 6 {
		return models.User{}, invalidf("password too short")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userByNameLocked(email) != nil {
		return models.User{}, fmt.Errorf("user %s: %w", email, errConflict)
	}
	u := &userRow{User: models.User{ID: uuid.New(), Username: email, Role: role}, hash: hash}
	s.users[u.ID] = u
	return u.User, nil
}

func (s *store) authenticate(email, password string) error {
	s.mu.Lock()
	u := s.userByNameLocked(email)
	s.mu.Unlock()
	if u == nil {
		return fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	}
	return nil
}

func (s *store) listUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (s *store) getUser(id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", id, common.ErrorNotFound)
	}
	return u.User, nil
}

func (s *store) updateUser(username string, p models.UserPatch) (models.User, error) {
	var hash []byte
	if p.Password != nil && *p.Password != "" {
		if len(*p.Password) < 6 {
			return models.User{}, invalidf("password too short")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*p.Password), s.bcryptCost)
		if err != nil {
			return models.User{}, err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByNameLocked(username)
	if u == nil {
		return models.User{}, fmt.Errorf("user %s: %w", username, common.ErrorNotFound)
	}
	if p.Username != nil && *p.Username != u.Username {
		if !validEmail(*p.Username) {
			return models.User{}, invalidf("invalid email %q", *p.Username)
		}
		if s.userByNameLocked(*p.Username) != nil {
			return models.User{}, fmt.Errorf("user %s: %w", *p.Username, errConflict)
		}
		u.Username = *p.Username
	}
	if p.Role != nil {
		if !p.Role.Known() {
			return models.User{}, invalidf("unknown role id %d", p.Role.ID())
		}
		u.Role = *p.Role
	}
	if hash != nil {
		u.hash = hash
	}
	return u.User, nil
}

func (s *store) deleteUsers(ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, ok := s.users[id]; !ok {
			return fmt.Errorf("user %s: %w", id, common.ErrorNotFound)
		}
	}
	for _, id := range ids {
		delete(s.users, id)
	}
	return nil
}

// categories

func (s *store) categoryLocked(id int64) models.Category {
	c := *s.categories[id]
	c.Goals = []int64{}
	for _, g := range s.goals {
		if g.Category == id {
			c.Goals = append(c.Goals, g.ID)
		}
	}
	slices.Sort(c.Goals)
	return c
}

func (s *store) ownedCategoryLocked(id int64, subject string) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, fmt.Errorf("categoria %d: %w", id, common.ErrorNotFound)
	}
	if c.Owner != subject {
		return nil, fmt.Errorf("categoria %d: %w", id, errForbidden)
	}
	return c, nil
}

func (s *store) listCategories(owner string) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Category{}
	for id, c := range s.categories {
		if owner == "" || c.Owner == owner {
			out = append(out, s.categoryLocked(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) getCategory(id int64, subject string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownedCategoryLocked(id, subject); err != nil {
		return models.Category{}, err
	}
	return s.categoryLocked(id), nil
}

func checkCategoryDraft(d *models.CategoryDraft, subject string) error {
	if strings.TrimSpace(d.Name) == "" {
		return invalidf("nome is required")
	}
	if d.Username == "" {
		d.Username = subject
	}
	if d.Username != subject {
		return fmt.Errorf("categoria for %s: %w", d.Username, errForbidden)
	}
	return nil
}

// createCategories inserts all drafts or none. Duplicate names are allowed.
func (s *store) createCategories(drafts []models.CategoryDraft, subject string) ([]models.Category, error) {
	for i := range drafts {
		if err := checkCategoryDraft(&drafts[i], subject); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(drafts))
	for _, d := range drafts {
		id := s.id()
		s.categories[id] = &models.Category{ID: id, Name: d.Name, Owner: d.Username}
		out = append(out, s.categoryLocked(id))
	}
	return out, nil
}

func (s *store) updateCategory(id int64, p models.CategoryPatch, subject string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.ownedCategoryLocked(id, subject)
	if err != nil {
		return models.Category{}, err
	}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return models.Category{}, invalidf("nome is required")
		}
		c.Name = *p.Name
	}
	return s.categoryLocked(id), nil
}

// deleteCategories removes the categories with their goals.
func (s *store) deleteCategories(ids []int64, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, err := s.ownedCategoryLocked(id, subject); err != nil {
			return err
		}
	}
	for _, id := range ids {
		delete(s.categories, id)
		for gid, g := range s.goals {
			if g.Category == id {
				s.deleteGoalLocked(gid)
			}
		}
	}
	return nil
}

func (s *store) categoryTotals(owner string) []models.CategoryTotal {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0)
	for id, c := range s.categories {
		if c.Owner == owner {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	out := make([]models.CategoryTotal, 0, len(ids))
	for _, id := range ids {
		var sum float64
		for _, g := range s.goals {
			if g.Category == id && g.CurrentValue != nil {
				sum += *g.CurrentValue
			}
		}
		out = append(out, models.CategoryTotal{Category: s.categories[id].Name, Amount: sum})
	}
	return out
}

// goals

func (s *store) goalLocked(id int64) models.Goal {
	g := s.goals[id].Goal
	g.Entries = []int64{}
	for _, e := range s.entries {
		if e.Goal != nil && *e.Goal == id {
			g.Entries = append(g.Entries, e.ID)
		}
	}
	slices.Sort(g.Entries)
	return g
}

func (s *store) ownedGoalLocked(id int64, subject string) (*goalRow, error) {
	g, ok := s.goals[id]
	if !ok {
		return nil, fmt.Errorf("meta %d: %w", id, common.ErrorNotFound)
	}
	if g.owner != subject {
		return nil, fmt.Errorf("meta %d: %w", id, errForbidden)
	}
	return g, nil
}

func (s *store) deleteGoalLocked(id int64) {
	delete(s.goals, id)
	for _, e := range s.entries {
		if e.Goal != nil && *e.Goal == id {
			e.Goal = nil
		}
	}
}

func (s *store) listGoals(owner string) []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Goal{}
	for id, g := range s.goals {
		if owner == "" || g.owner == owner {
			out = append(out, s.goalLocked(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) getGoal(id int64, subject string) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownedGoalLocked(id, subject); err != nil {
		return models.Goal{}, err
	}
	return s.goalLocked(id), nil
}

func checkDate(field, v string) error {
	if v == "" {
		return nil
	}
	if _, err := models.ParseTimestamp(v); err != nil {
		return invalidf("%s: %v", field, err)
	}
	return nil
}

func checkGoalFields(desc string, value *float64, start, end string) error {
	if strings.TrimSpace(desc) == "" {
		return invalidf("descricao is required")
	}
	if len([]rune(desc)) > maxGoalDescription {
		return invalidf("descricao longer than %d characters", maxGoalDescription)
	}
	if value != nil && *value < 0 {
		return invalidf("valorAtual cannot be negative")
	}
	if err := checkDate("dataInicio", start); err != nil {
		return err
	}
	return checkDate("dataFim", end)
}

func (s *store) createGoals(drafts []models.GoalDraft, subject string) ([]models.Goal, error) {
	for i, d := range drafts {
		if err := checkGoalFields(d.Description, d.CurrentValue, d.StartDate, d.EndDate); err != nil {
			return nil, err
		}
		if d.Username == "" {
			drafts[i].Username = subject
		} else if d.Username != subject {
			return nil, fmt.Errorf("meta for %s: %w", d.Username, errForbidden)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range drafts {
		if _, err := s.ownedCategoryLocked(d.Category, subject); err != nil {
			return nil, err
		}
	}
	out := make([]models.Goal, 0, len(drafts))
	for _, d := range drafts {
		id := s.id()
		s.goals[id] = &goalRow{
			Goal: models.Goal{
				ID:           id,
				Description:  d.Description,
				CurrentValue: d.CurrentValue,
				StartDate:    d.StartDate,
				EndDate:      d.EndDate,
				Category:     d.Category,
			},
			owner: d.Username,
		}
		out = append(out, s.goalLocked(id))
	}
	return out, nil
}

func (s *store) updateGoal(id int64, p models.GoalPatch, subject string) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.ownedGoalLocked(id, subject)
	if err != nil {
		return models.Goal{}, err
	}

	next := g.Goal
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.CurrentValue != nil {
		next.CurrentValue = p.CurrentValue
	}
	if p.StartDate != nil {
		next.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		next.EndDate = *p.EndDate
	}
	if p.Category != nil {
		if _, err := s.ownedCategoryLocked(*p.Category, subject); err != nil {
			return models.Goal{}, err
		}
		next.Category = *p.Category
	}
	if err := checkGoalFields(next.Description, next.CurrentValue, next.StartDate, next.EndDate); err != nil {
		return models.Goal{}, err
	}
	g.Goal = next
	return s.goalLocked(id), nil
}

func (s *store) deleteGoals(ids []int64, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, err := s.ownedGoalLocked(id, subject); err != nil {
			return err
		}
	}
	for _, id := range ids {
		s.deleteGoalLocked(id)
	}
	return nil
}

// entries

func (s *store) ownedEntryLocked(id int64, subject string) (*entryRow, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("lancamento %d: %w", id, common.ErrorNotFound)
	}
	if e.owner != subject {
		return nil, fmt.Errorf("lancamento %d: %w", id, errForbidden)
	}
	return e, nil
}

func checkEntryFields(desc string, kind models.EntryKind) error {
	if strings.TrimSpace(desc) == "" {
		return invalidf("descricao is required")
	}
	if kind != models.EntryIncome && kind != models.EntryExpense {
		return invalidf("tipoLancamento must be %s or %s", models.EntryIncome, models.EntryExpense)
	}
	return nil
}

func (s *store) listEntries(owner string) []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Entry{}
	for _, e := range s.entries {
		if owner == "" || e.owner == owner {
			out = append(out, e.Entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) getEntry(id int64, subject string) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.ownedEntryLocked(id, subject)
	if err != nil {
		return models.Entry{}, err
	}
	return e.Entry, nil
}

func (s *store) createEntries(drafts []models.EntryDraft, subject string) ([]models.Entry, error) {
	for _, d := range drafts {
		if err := checkEntryFields(d.Description, d.Kind); err != nil {
			return nil, err
		}
		if d.Goal <= 0 {
			return nil, invalidf("meta must be a positive id")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range drafts {
		if _, err := s.ownedGoalLocked(d.Goal, subject); err != nil {
			return nil, err
		}
	}
	out := make([]models.Entry, 0, len(drafts))
	for _, d := range drafts {
		id := s.id()
		goal := d.Goal
		e := &entryRow{
			Entry: models.Entry{
				ID:          id,
				Description: d.Description,
				Amount:      d.Amount,
				Kind:        d.Kind,
				CreatedAt:   d.CreatedAt.String(),
				Goal:        &goal,
			},
			owner: subject,
		}
		s.entries[id] = e
		out = append(out, e.Entry)
	}
	return out, nil
}

func (s *store) updateEntry(id int64, p models.EntryPatch, subject string) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.ownedEntryLocked(id, subject)
	if err != nil {
		return models.Entry{}, err
	}

	next := e.Entry
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Amount != nil {
		next.Amount = *p.Amount
	}
	if p.CreatedAt != nil {
		next.CreatedAt = p.CreatedAt.String()
	}
	if p.Kind != nil {
		next.Kind = *p.Kind
	}
	if p.Goal != nil {
		if _, err := s.ownedGoalLocked(*p.Goal, subject); err != nil {
			return models.Entry{}, err
		}
		g := *p.Goal
		next.Goal = &g
	}
	if err := checkEntryFields(next.Description, next.Kind); err != nil {
		return models.Entry{}, err
	}
	e.Entry = next
	return e.Entry, nil
}

func (s *store) deleteEntries(ids []int64, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, err := s.ownedEntryLocked(id, subject); err != nil {
			return err
		}
	}
	for _, id := range ids {
		delete(s.entries, id)
	}
	return nil
}

// cashFlow groups owner's entries by calendar month.
func (s *store) cashFlow(owner string) []models.CashFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	byPeriod := map[string]*models.CashFlow{}
	for _, e := range s.entries {
		if e.owner != owner {
			continue
		}
		ts, err := models.ParseTimestamp(e.CreatedAt)
		if err != nil {
			continue
		}
		period := ts.Format("2006-01")
		cf, ok := byPeriod[period]
		if !ok {
			cf = &models.CashFlow{Period: period}
			byPeriod[period] = cf
		}
		switch e.Kind {
		case models.EntryIncome:
			cf.Income += e.Amount
		case models.EntryExpense:
			cf.Expenses += e.Amount
		}
	}

	out := make([]models.CashFlow, 0, len(byPeriod))
	for _, cf := range byPeriod {
		cf.Net = cf.Income - cf.Expenses
		out = append(out, *cf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
