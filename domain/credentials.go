package domain

import (
	"bucket-chan/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Credentials are supplied once at startup and never mutated.
type Credentials struct {
	Username string `validate:"required,max=64"`
	Secret   string `validate:"required"`
}

func NewCredentials(username, secret string) (Credentials, error) {
	c := Credentials{Username: username, Secret: secret}
	if err := validate.Struct(c); err != nil {
		return Credentials{}, fmt.Errorf("%w: %s", errors.ErrInvalidCredentials, err)
	}
	return c, nil
}

// String never prints the secret.
func (c Credentials) String() string {
	return c.Username
}
