package user

// Principal is the authenticated identity resolved by the account service.
type Principal struct {
	UserID      string
	DisplayName string
}
