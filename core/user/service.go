package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound = errors.New("user not found")
	// ErrBadCredentials is deliberately generic: callers must not learn
	// whether the email or the password was wrong.
	ErrBadCredentials = errors.New("invalid email or password")
)

type (
	Repository interface {
		GetUserByEmail(ctx context.Context, email string) (User, error)
		// UpdateOrCreateUser matches on email.
		UpdateOrCreateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) UpdateOrCreate(ctx context.Context, usr User) (User, error) {
	return svc.repo.UpdateOrCreateUser(ctx, usr)
}

// Authenticate returns the user matching `email` iff `pwd` verifies against
// the stored hash; any mismatch yields ErrBadCredentials.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrBadCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrBadCredentials
	}
	return usr, nil
}
