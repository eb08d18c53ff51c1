package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gophfinance/internal/common"
)

// Claims is the decoded token payload. Registered claims are typed; every
// other field is kept raw in Extra.
type Claims struct {
	jwt.RegisteredClaims
	Extra map[string]json.RawMessage `json:"-"`
}

// decodeClaims reads the payload segment without verifying the signature.
// The client has no key; the backend verifies.
func decodeClaims(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want 3 segments, got %d", common.ErrInvalidToken, len(parts))
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", common.ErrInvalidToken, err)
	}

	var c Claims
	if err := json.Unmarshal(payload, &c.RegisteredClaims); err != nil {
		return nil, fmt.Errorf("%w: parse payload: %v", common.ErrInvalidToken, err)
	}
	if err := json.Unmarshal(payload, &c.Extra); err != nil {
		return nil, fmt.Errorf("%w: parse payload: %v", common.ErrInvalidToken, err)
	}
	for _, k := range []string{"iss", "sub", "aud", "exp", "nbf", "iat", "jti"} {
		delete(c.Extra, k)
	}
	return &c, nil
}
