package models

import "github.com/google/uuid"

type Category struct {
	ID    int64   `json:"id"`
	Name  string  `json:"nome"`
	Owner string  `json:"user"`
	Goals []int64 `json:"metas"`
}

type CategoryDraft struct {
	Name     string `json:"nome"`
	Username string `json:"username"`
}

type CategoryPatch struct {
	Name *string `json:"nome,omitempty"`
}

// Entry is a financial movement. CreatedAt is kept as the backend sent it.
type Entry struct {
	ID              int64     `json:"id"`
	Description     string    `json:"descricao"`
	Amount          float64   `json:"valor"`
	Kind            EntryKind `json:"tipoLancamento"`
	CreatedAt       string    `json:"dataCriacao"`
	Goal            *int64    `json:"meta,omitempty"`
	MicroCategoryID *int64    `json:"microCategoriaId,omitempty"`
}

type EntryDraft struct {
	Description string    `json:"descricao"`
	Amount      float64   `json:"valor"`
	CreatedAt   Timestamp `json:"dataCriacao"`
	Kind        EntryKind `json:"tipoLancamento"`
	Goal        int64     `json:"meta"`
}

type EntryPatch struct {
	Description *string    `json:"descricao,omitempty"`
	Amount      *float64   `json:"valor,omitempty"`
	CreatedAt   *Timestamp `json:"dataCriacao,omitempty"`
	Kind        *EntryKind `json:"tipoLancamento,omitempty"`
	Goal        *int64     `json:"meta,omitempty"`
}

type Goal struct {
	ID           int64    `json:"id"`
	Description  string   `json:"descricao"`
	CurrentValue *float64 `json:"valorAtual,omitempty"`
	StartDate    string   `json:"dataInicio,omitempty"`
	EndDate      string   `json:"dataFim,omitempty"`
	Category     int64    `json:"categoria"`
	Entries      []int64  `json:"lancamentos"`
}

type GoalDraft struct {
	Description  string   `json:"descricao"`
	CurrentValue *float64 `json:"valorAtual,omitempty"`
	StartDate    string   `json:"dataInicio,omitempty"`
	EndDate      string   `json:"dataFim,omitempty"`
	Category     int64    `json:"categoria"`
	Username     string   `json:"username"`
}

type GoalPatch struct {
	Description  *string  `json:"descricao,omitempty"`
	CurrentValue *float64 `json:"valorAtual,omitempty"`
	StartDate    *string  `json:"dataInicio,omitempty"`
	EndDate      *string  `json:"dataFim,omitempty"`
	Category     *int64   `json:"categoria,omitempty"`
}

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"roleId"`
}

// UserPatch leaves a field unchanged server-side when it is omitted. An
// empty password is omitted too, meaning "keep the current password".
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"roleId,omitempty"`
}

// Normalize drops an empty password.
func (p UserPatch) Normalize() UserPatch {
	if p.Password != nil && *p.Password == "" {
		p.Password = nil
	}
	return p
}

// UserDraft exists so User fits the generic resource shape; the backend
// creates users through registration only.
type UserDraft struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"roleId"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CategoryTotal struct {
	Category string  `json:"categoria"`
	Amount   float64 `json:"valor"`
}

// CashFlow is one period (e.g. "2025-03") of income against expenses.
type CashFlow struct {
	Period   string  `json:"periodo"`
	Income   float64 `json:"totalReceitas"`
	Expenses float64 `json:"totalDespesas"`
	Net      float64 `json:"saldoLiquido"`
}

// Ptr returns a pointer to v, for filling patches.
func Ptr[T any](v T) *T { return &v }
