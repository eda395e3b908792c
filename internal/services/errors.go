package services

import "errors"

// ErrDuplicateEmail is returned when registering with an email that
// already belongs to another user.
var ErrDuplicateEmail = errors.New("user with such an email already exists")

// ErrInvalidCredentials is returned on any login failure. The message
// deliberately does not reveal whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("wrong email or password")
