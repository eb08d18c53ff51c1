package views

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophfinance/internal/client/client"
	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

var (
	anaID = uuid.MustParse("0b7a4c1e-5a8e-4a53-9f0b-0a3f7f0d6a11")
	boID  = uuid.MustParse("6f1b9d2c-2c4e-4f55-8d11-1c2b3a4d5e6f")
)

func loadedUserView(t *testing.T) (*env, *fakeUsers, *UserView) {
	t.Helper()
	e, d := newEnv()
	users := &fakeUsers{items: []models.User{
		{ID: anaID, Username: "ana@example.com", Role: models.RoleAdmin},
		{ID: boID, Username: "bo@example.com", Role: models.RoleUser},
	}}
	v := NewUserView(d, users)
	require.NoError(t, v.Load(context.Background()))
	return e, users, v
}

func TestUserView_LoadWithoutIdentity(t *testing.T) {
	e, d := newEnv()
	e.session.identity = ""
	users := &fakeUsers{items: []models.User{{ID: anaID}}}
	v := NewUserView(d, users)

	require.ErrorIs(t, v.Load(context.Background()), client.ErrNoIdentity)
	assert.Zero(t, users.lists)
	assert.Empty(t, v.Items())
	assert.Equal(t, []string{"You are not signed in."}, e.notify.failures)
}

func TestUserView_SaveByOriginalUsername(t *testing.T) {
	_, users, v := loadedUserView(t)

	d, err := v.Edit(boID)
	require.NoError(t, err)
	d.Username = "bob@example.com"
	d.Role = models.RoleAdmin
	require.NoError(t, v.Save(context.Background()))

	assert.Equal(t, []string{"bo@example.com"}, users.updated)
	p := users.patches[0]
	assert.Equal(t, "bob@example.com", *p.Username)
	assert.Equal(t, models.RoleAdmin, *p.Role)
	assert.Nil(t, p.Password, "an empty password keeps the current one")
}

func TestUserView_SaveValidation(t *testing.T) {
	cases := map[string]func(*UserEdit){
		"bad username":   func(d *UserEdit) { d.Username = "bob" },
		"short password": func(d *UserEdit) { d.Password = "123" },
		"unknown role":   func(d *UserEdit) { d.Role = models.RoleFromID(9) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, users, v := loadedUserView(t)
			d, err := v.Edit(boID)
			require.NoError(t, err)
			mutate(d)

			var ve *ValidationError
			require.ErrorAs(t, v.Save(context.Background()), &ve)
			assert.Zero(t, users.calls)
		})
	}
}

func TestUserView_PasswordOnly(t *testing.T) {
	_, users, v := loadedUserView(t)
	d, err := v.Edit(anaID)
	require.NoError(t, err)
	d.Password = "newsecret"

	require.NoError(t, v.Save(context.Background()))
	p := users.patches[0]
	assert.Equal(t, "newsecret", *p.Password)
	assert.Nil(t, p.Username)
	assert.Nil(t, p.Role)
}

func TestUserView_Delete(t *testing.T) {
	e, users, v := loadedUserView(t)

	e.confirm.answer = false
	require.NoError(t, v.Delete(context.Background(), boID))
	assert.Zero(t, users.calls)
	assert.Equal(t, []string{"Delete user bo@example.com?"}, e.confirm.asked)

	e.confirm.answer = true
	require.NoError(t, v.Delete(context.Background(), boID))
	require.NoError(t, v.DeleteMany(context.Background(), []uuid.UUID{anaID, boID}))
	assert.Equal(t, []uuid.UUID{boID}, users.deleted)
	assert.Equal(t, [][]uuid.UUID{{anaID, boID}}, users.batches)
}
