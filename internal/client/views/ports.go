package views

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophfinance/internal/client/guard"
	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

// Notifier shows short transient messages to the user.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Session is the part of session.Manager the views need.
type Session interface {
	Identity(ctx context.Context) (string, bool)
	Username(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Navigator = guard.Navigator

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
}

type CategoryAPI interface {
	ListByOwner(ctx context.Context, identity string) ([]models.Category, error)
	Create(ctx context.Context, d models.CategoryDraft) (models.Category, error)
	Update(ctx context.Context, id int64, p models.CategoryPatch) (models.Category, error)
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

type EntryAPI interface {
	ListByOwner(ctx context.Context, identity string) ([]models.Entry, error)
	Create(ctx context.Context, d models.EntryDraft) (models.Entry, error)
	Update(ctx context.Context, id int64, p models.EntryPatch) (models.Entry, error)
	Delete(ctx context.Context, id int64) error
}

type GoalAPI interface {
	ListByOwner(ctx context.Context, identity string) ([]models.Goal, error)
	Create(ctx context.Context, d models.GoalDraft) (models.Goal, error)
	Update(ctx context.Context, id int64, p models.GoalPatch) (models.Goal, error)
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

type UserAPI interface {
	List(ctx context.Context) ([]models.User, error)
	UpdateByUsername(ctx context.Context, username string, p models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

type ReportAPI interface {
	CategoryTotals(ctx context.Context, identity string) ([]models.CategoryTotal, error)
	CashFlowHistory(ctx context.Context, identity string) ([]models.CashFlow, error)
}
