package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_TruncatesAndDropsZone(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := NewTimestamp(time.Date(2025, 3, 1, 9, 30, 15, 987654321, loc))

	assert.Equal(t, "2025-03-01T12:30:15", ts.String())

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-01T12:30:15"`, string(b))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-03-01T12:30:15", want: time.Date(2025, 3, 1, 12, 30, 15, 0, time.UTC)},
		{in: "2025-03-01T12:30:15.123", want: time.Date(2025, 3, 1, 12, 30, 15, 123000000, time.UTC)},
		{in: "2025-03-01T12:30:15-03:00", want: time.Date(2025, 3, 1, 15, 30, 15, 0, time.UTC)},
		{in: "2025-03-01", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestRole(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "role#7", RoleFromID(7).String())
	assert.False(t, RoleFromID(7).Known())

	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"6f1c2a52-3b1f-4d7e-9d5b-1a2b3c4d5e6f","username":"a@b.com","roleId":2}`), &u))
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "6f1c2a52-3b1f-4d7e-9d5b-1a2b3c4d5e6f", u.ID.String())

	r, err := ParseRole("Admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	_, err = ParseRole("root")
	require.Error(t, err)
}

func TestParseEntryKind(t *testing.T) {
	k, err := ParseEntryKind("income")
	require.NoError(t, err)
	assert.Equal(t, EntryIncome, k)

	k, err = ParseEntryKind("despesa")
	require.NoError(t, err)
	assert.Equal(t, EntryExpense, k)

	_, err = ParseEntryKind("transfer")
	require.Error(t, err)
}

func TestPatches_OmitUnsetFields(t *testing.T) {
	b, err := json.Marshal(EntryPatch{Amount: Ptr(12.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"valor":12.5}`, string(b))

	b, err = json.Marshal(GoalPatch{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	b, err = json.Marshal(EntryPatch{CreatedAt: Ptr(NewTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC)))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dataCriacao":"2025-01-02T03:04:05"}`, string(b))
}

func TestUserPatch_EmptyPasswordMeansUnchanged(t *testing.T) {
	p := UserPatch{Username: Ptr("a@b.com"), Password: Ptr(""), Role: Ptr(RoleUser)}.Normalize()

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"a@b.com","roleId":1}`, string(b))

	p = UserPatch{Password: Ptr("s3cret!")}.Normalize()
	b, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"password":"s3cret!"}`, string(b))
}

func TestEntryDraft_Wire(t *testing.T) {
	d := EntryDraft{
		Description: "salary",
		Amount:      1000,
		CreatedAt:   NewTimestamp(time.Date(2025, 5, 1, 8, 0, 0, 500, time.UTC)),
		Kind:        EntryIncome,
		Goal:        3,
	}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"descricao":"salary","valor":1000,"dataCriacao":"2025-05-01T08:00:00","tipoLancamento":"RECEITA","meta":3}`, string(b))
}
