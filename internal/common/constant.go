package common

// Keys of the persisted session slot. The client keeps exactly these two
// entries in its key/value store.
const (
	// TokenStorageKey holds the bearer token returned by login/register.
	TokenStorageKey = "auth-token"

	// UsernameStorageKey holds the display username copied from the token's
	// subject claim.
	UsernameStorageKey = "username"
)

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound requests.
const AuthorizationHeaderName = "Authorization"
