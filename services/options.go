package services

// UnitCategories are the measurement categories a unit can belong to.
var UnitCategories = []string{
	"weight",
	"length",
	"volume",
	"area",
	"time",
	"piece",
	"other",
}

// MaterialTypes distinguishes consumable materials from installed equipment.
var MaterialTypes = []string{"material", "equipment"}

// ProjectStatuses are the lifecycle states of a project.
var ProjectStatuses = []string{"active", "pending", "completed", "cancelled"}

// SystemStatuses are the lifecycle states of an engineering system.
var SystemStatuses = []string{"active", "inactive", "development", "maintenance"}

// AccessLevels order matters: each level implies the ones before it.
var AccessLevels = []string{"read", "write", "admin"}

// UserRoles for admin-panel accounts.
var UserRoles = []string{"admin", "editor"}

// ImageCategories group uploaded images by where the site uses them.
var ImageCategories = []string{"slider", "portfolio", "certificates", "other"}

// Bank record provenance. Rows imported from the central-bank directory are
// read-only; only manually entered rows may be edited or removed.
const (
	BankSourceAPI    = "api"
	BankSourceManual = "manual"
)

// HasAccessLevel reports whether level grants at least min.
func HasAccessLevel(level, min string) bool {
	rank := func(l string) int {
		for i, v := range AccessLevels {
			if v == l {
				return i + 1
			}
		}
		return 0
	}
	got := rank(level)
	return got > 0 && got >= rank(min)
}
