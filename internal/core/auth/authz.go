package auth

func IsAdmin(c *Claims) bool { return c != nil && c.IsAdmin }

// IsOwner compares the caller with the owner reference of a loaded resource.
func IsOwner(c *Claims, ownerID string) bool {
	return c != nil && c.UID != "" && c.UID == ownerID
}
