package views

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

// UserEdit is the draft of a user being edited. An empty Password keeps
// the current one.
type UserEdit struct {
	ID       uuid.UUID
	Username string
	Password string
	Role     models.Role
}

// UserView administers accounts.
type UserView struct {
	listView[models.User]
	api      UserAPI
	draft    *UserEdit
	original models.User
}

func NewUserView(d Deps, api UserAPI) *UserView {
	return &UserView{listView: newListView[models.User](d, "users"), api: api}
}

// Load lists every user. It still needs a signed-in identity even though
// the list is not scoped to it.
func (v *UserView) Load(ctx context.Context) error {
	return v.reload(ctx, func(ctx context.Context, _ string) ([]models.User, error) {
		return v.api.List(ctx)
	})
}

func (v *UserView) Edit(id uuid.UUID) (*UserEdit, error) {
	u, ok := v.list.Find(func(u models.User) bool { return u.ID == id })
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotInList)
	}
	v.original = u
	v.draft = &UserEdit{ID: u.ID, Username: u.Username, Role: u.Role}
	return v.draft, nil
}

func (v *UserView) Draft() *UserEdit { return v.draft }

func (v *UserView) CancelEdit() { v.draft = nil }

// Save updates the user by its original username, sending changed fields
// and the new password if one was typed.
func (v *UserView) Save(ctx context.Context) error {
	d := v.draft
	if d == nil {
		return ErrNoDraft
	}

	var p models.UserPatch
	if d.Username != v.original.Username {
		if err := validateEmail(d.Username); err != nil {
			v.Notify.Error(ctx, err.Error())
			return err
		}
		p.Username = models.Ptr(d.Username)
	}
	if d.Password != "" {
		if err := validatePassword("password", d.Password); err != nil {
			v.Notify.Error(ctx, err.Error())
			return err
		}
		p.Password = models.Ptr(d.Password)
	}
	if d.Role != v.original.Role {
		if !d.Role.Known() {
			err := invalid("role", "is not a known role")
			v.Notify.Error(ctx, err.Error())
			return err
		}
		p.Role = models.Ptr(d.Role)
	}
	if p == (models.UserPatch{}) {
		v.draft = nil
		v.Notify.Success(ctx, "Nothing to save.")
		return nil
	}

	return v.mutate(ctx, "update user", "User updated.", func(ctx context.Context) error {
		if _, err := v.api.UpdateByUsername(ctx, v.original.Username, p); err != nil {
			return err
		}
		v.draft = nil
		return nil
	}, v.Load)
}

func (v *UserView) Delete(ctx context.Context, id uuid.UUID) error {
	label := id.String()
	if u, ok := v.list.Find(func(u models.User) bool { return u.ID == id }); ok {
		label = u.Username
	}
	if ok, err := v.confirmed(ctx, "Delete user "+label+"?"); !ok {
		return err
	}
	return v.mutate(ctx, "delete user", "User deleted.", func(ctx context.Context) error {
		return v.api.Delete(ctx, id)
	}, v.Load)
}

func (v *UserView) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if ok, err := v.confirmed(ctx, fmt.Sprintf("Delete %d users?", len(ids))); !ok {
		return err
	}
	return v.mutate(ctx, "delete users", "Users deleted.", func(ctx context.Context) error {
		return v.api.DeleteBatch(ctx, ids)
	}, v.Load)
}

func (v *UserView) Reset() {
	v.list.Reset()
	v.draft = nil
}
