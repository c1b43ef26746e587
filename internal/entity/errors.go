package entity

import "errors"

// ErrInvalidParams marks caller-supplied parameters rejected before any
// fetch or computation begins. Transport layers map it to a client error;
// everything else surfacing from a pipeline is an upstream failure.
var ErrInvalidParams = errors.New("invalid parameters")
