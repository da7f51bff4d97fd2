package guard

import (
	"github.com/gin-gonic/gin"

	"hostelhub/internal/models"
)

// Identity is the resolved caller: who they are, which hostel scopes
// their queries, and the role the token was issued for. Handlers thread
// this value explicitly into every query they build.
type Identity struct {
	AuthID       uint
	HostelID     uint
	AcademicYear string
	Role         string
}

// fromClaims rebuilds the identity from the claims the JWT middleware
// stored in the context. Numeric claims round-trip through JSON as
// float64.
func fromClaims(c *gin.Context) (Identity, bool) {
	authIfc, ok := c.Get("auth_id")
	if !ok {
		return Identity{}, false
	}
	authID, ok := authIfc.(float64)
	if !ok {
		return Identity{}, false
	}

	role, _ := c.Get("role")
	roleStr, ok := role.(string)
	if !ok {
		return Identity{}, false
	}

	ident := Identity{AuthID: uint(authID), Role: roleStr}
	if h, ok := c.Get("hostel_id"); ok {
		if hf, ok := h.(float64); ok {
			ident.HostelID = uint(hf)
		}
	}
	if y, ok := c.Get("academic_year"); ok {
		if ys, ok := y.(string); ok {
			ident.AcademicYear = ys
		}
	}
	return ident, true
}

// Admin resolves the caller as a hostel admin. An admin without a hostel
// affiliation is rejected.
func Admin(c *gin.Context) (Identity, bool) {
	ident, ok := fromClaims(c)
	if !ok || ident.Role != models.RoleAdmin || ident.HostelID == 0 {
		return Identity{}, false
	}
	return ident, true
}

// SuperAdmin resolves the caller as a super admin.
func SuperAdmin(c *gin.Context) (Identity, bool) {
	ident, ok := fromClaims(c)
	if !ok || ident.Role != models.RoleSuperAdmin {
		return Identity{}, false
	}
	return ident, true
}

// Student resolves the caller as a student; students always belong to a
// hostel.
func Student(c *gin.Context) (Identity, bool) {
	ident, ok := fromClaims(c)
	if !ok || ident.Role != models.RoleStudent || ident.HostelID == 0 {
		return Identity{}, false
	}
	return ident, true
}
