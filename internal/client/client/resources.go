package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

// Collection names as they appear in backend paths.
const (
	CategoriesPath = "categorias"
	EntriesPath    = "lancamentos"
	GoalsPath      = "metas"
	UsersPath      = "users"
)

type (
	Categories = Resource[int64, models.Category, models.CategoryDraft, models.CategoryPatch]
	Entries    = Resource[int64, models.Entry, models.EntryDraft, models.EntryPatch]
	Goals      = Resource[int64, models.Goal, models.GoalDraft, models.GoalPatch]
)

// Users differs from the other collections: updates are keyed by username
// and the password is dropped from a patch when empty.
type Users struct {
	*Resource[uuid.UUID, models.User, models.UserDraft, models.UserPatch]
}

func NewUsers(c *HTTPClient) *Users {
	return &Users{Resource: NewResource[uuid.UUID, models.User, models.UserDraft, models.UserPatch](c, UsersPath)}
}

func (u *Users) UpdateByUsername(ctx context.Context, username string, patch models.UserPatch) (models.User, error) {
	return u.updateAt(ctx, username, patch.Normalize())
}

// API bundles every backend client sharing one HTTPClient.
type API struct {
	Auth       *AuthClient
	Categories *Categories
	Entries    *Entries
	Goals      *Goals
	Users      *Users
	Reports    *Reports
}

func NewAPI(c *HTTPClient) *API {
	return &API{
		Auth:       NewAuthClient(c),
		Categories: NewResource[int64, models.Category, models.CategoryDraft, models.CategoryPatch](c, CategoriesPath),
		Entries:    NewResource[int64, models.Entry, models.EntryDraft, models.EntryPatch](c, EntriesPath),
		Goals:      NewResource[int64, models.Goal, models.GoalDraft, models.GoalPatch](c, GoalsPath),
		Users:      NewUsers(c),
		Reports:    NewReports(c),
	}
}
