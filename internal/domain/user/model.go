package user

// Principal is the authenticated caller of an admin route.
type Principal struct {
	UserID string
	Email  string
	Role   string
}
