// Package authz decides what an authenticated user may do to a resource.
package authz

// Action is an operation on a resource.
type Action string

const (
	View   Action = "view"
	Edit   Action = "edit"
	Delete Action = "delete"
)

// Resource is anything with a single owning user.
type Resource interface {
	OwnerID() uint
}

// Actor is the user performing a request.
type Actor struct {
	UserID uint
}

// Can reports whether the actor may perform action on r.
// Viewing is open to everyone; editing and deleting are owner-only.
func (a Actor) Can(action Action, r Resource) bool {
	if r == nil {
		return false
	}
	switch action {
	case View:
		return true
	case Edit, Delete:
		return a.UserID != 0 && r.OwnerID() == a.UserID
	default:
		return false
	}
}

// Is reports whether the actor is the given user. Used where a request body
// names the acting party explicitly.
func (a Actor) Is(userID uint) bool {
	return a.UserID != 0 && a.UserID == userID
}
