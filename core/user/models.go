package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

// User is a staff login account. It has no HTTP create/update/delete
// endpoint; accounts are provisioned with the admin CLI.
type User struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash []byte `json:"-" db:"password_hash"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (l *Login) Validate() error {
	l.Email = core.CleanString(l.Email, true /* lower */)
	return core.Validate.Struct(l)
}
