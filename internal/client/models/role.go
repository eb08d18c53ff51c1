package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the closed set of user roles. The backend sends it as roleId.
type Role int64

const (
	RoleUnknown Role = 0
	RoleUser    Role = 1
	RoleAdmin   Role = 2
)

// RoleFromID maps a backend roleId; unrecognised ids are kept so they can
// round-trip but report Known() == false.
func RoleFromID(id int64) Role { return Role(id) }

func (r Role) ID() int64 { return int64(r) }

func (r Role) Known() bool { return r == RoleUser || r == RoleAdmin }

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role#%d", int64(r))
	}
}

// ParseRole accepts "user", "admin" or a numeric id.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "1":
		return RoleUser, nil
	case "admin", "2":
		return RoleAdmin, nil
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) { return json.Marshal(int64(r)) }

func (r *Role) UnmarshalJSON(b []byte) error {
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	*r = RoleFromID(id)
	return nil
}
