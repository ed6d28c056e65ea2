package auth

import "time"

// Account is a provisioned portal account. Family accounts own applications;
// accounts with Admin set belong to admissions staff.
type Account struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Admin     bool       `json:"admin"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

// Principal converts the account into a request principal.
func (a *Account) Principal() Principal {
	return Principal{
		AccountID: a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Admin:     a.Admin,
	}
}
