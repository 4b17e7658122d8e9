package user

// User is a registry member. CompanyID is a plain reference without a
// foreign key behind it: it may point at a company that no longer exists,
// in which case reads resolve it to no company.
type User struct {
	ID           int64
	Name         string
	Surname      string
	Email        string
	PasswordHash string
	CompanyID    *int64
}

// HasCompanyRef reports whether the user carries a company reference at
// all. It says nothing about whether the referenced company still exists.
func (u *User) HasCompanyRef() bool {
	return u.CompanyID != nil
}
