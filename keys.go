package sessiontrack

import "github.com/google/uuid"

// Conventional storage keys. Each key names an independent session namespace;
// records under different keys never interact.
const (
	// KeyUserSession is the conventional key for the primary application area.
	KeyUserSession = "loginData"
	// KeyAdminSession is the conventional key for the administrative area.
	KeyAdminSession = "adminLoginData"
)

// NewSessionKey returns a random, collision-free session key for callers that
// need session slots beyond the two conventional namespaces.
func NewSessionKey() string {
	return "session:" + uuid.NewString()
}
