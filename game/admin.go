package game

// adminGuard enforces the single-admin invariant: at most one live connection
// holds the admin role. Owned by the session, which serializes access.
type adminGuard struct {
	connID string
}

// Register claims the admin slot for connID. Returns false when another
// connection already holds it.
func (g *adminGuard) Register(connID string) bool {
	if g.connID != "" {
		return false
	}
	g.connID = connID
	return true
}

// Release clears the slot only if connID is the current admin, so stale or
// duplicate release events from other connections are harmless.
func (g *adminGuard) Release(connID string) bool {
	if g.connID != connID || connID == "" {
		return false
	}
	g.connID = ""
	return true
}

func (g *adminGuard) Exists() bool {
	return g.connID != ""
}
