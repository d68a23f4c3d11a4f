package service

import "errors"

// ErrDriverNotAssignable covers assignment attempts against deactivated drivers.
var ErrDriverNotAssignable = errors.New("driver is not active")
