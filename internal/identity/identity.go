// Package identity resolves which storage namespace a caller's assets live
// in and prepares that namespace on first use.
package identity

// GuestKey is the namespace suffix used when no identity is present.
const GuestKey = "guest"

// Identity is the subset of an authenticated user the namespace derives from.
type Identity struct {
	ID    string `json:"id,omitempty"`
	UID   string `json:"uid,omitempty"`
	Email string `json:"email,omitempty"`
}

// Key returns the first non-empty of ID, UID and Email, or "" for a nil or
// blank identity.
func (i *Identity) Key() string {
	if i == nil {
		return ""
	}
	switch {
	case i.ID != "":
		return i.ID
	case i.UID != "":
		return i.UID
	default:
		return i.Email
	}
}

// IsGuest reports whether the identity resolves to the guest namespace.
func (i *Identity) IsGuest() bool {
	return i.Key() == ""
}

// Namespace returns the storage key for ident under base.
func Namespace(base string, ident *Identity) string {
	key := ident.Key()
	if key == "" {
		key = GuestKey
	}
	return base + "_" + key
}
