package domain

// Session is the persisted auth state of one console session (sid cookie).
type Session struct {
	ID            string `db:"id" json:"id"`
	UserName      string `db:"user_name" json:"userName"`
	Token         string `db:"token" json:"token"`
	Authenticated bool   `db:"authenticated" json:"authenticated"`
}
