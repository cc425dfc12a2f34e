package model

import "fmt"

// Field selects which part of a credential bundle a disclosure targets.
type Field string

const (
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
	FieldCookie   Field = "cookie"
	FieldAll      Field = "all"
)

// ParseField validates a raw field selector against the closed set.
func ParseField(raw string) (Field, error) {
	switch Field(raw) {
	case FieldEmail, FieldPassword, FieldCookie, FieldAll:
		return Field(raw), nil
	}
	return "", fmt.Errorf("unknown credential field %q", raw)
}

// CredentialBundle is the per-tool secret payload guarded by the vault:
// the shared account email, its password, and a ready-to-use session cookie.
// Values are opaque capability strings; nothing in the core inspects or
// caches them.
type CredentialBundle struct {
	ToolID   int64
	Email    string
	Password string
	Cookie   string
}

// Select returns the bundle fields named by the selector as a map keyed by
// field name, which is also the JSON shape the API returns.
func (b CredentialBundle) Select(field Field) map[string]string {
	switch field {
	case FieldEmail:
		return map[string]string{"email": b.Email}
	case FieldPassword:
		return map[string]string{"password": b.Password}
	case FieldCookie:
		return map[string]string{"cookie": b.Cookie}
	case FieldAll:
		return map[string]string{
			"email":    b.Email,
			"password": b.Password,
			"cookie":   b.Cookie,
		}
	}
	return nil
}
