package services

import "errors"

// ErrValidation is the base error for local precondition failures. These
// never reach the network: the operation is aborted and the message is
// surfaced inline so the operator can correct the input.
var ErrValidation = errors.New("validation error")
