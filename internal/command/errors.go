package command

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRequest     = errors.New("command: empty request")
	ErrUnknownOpcode    = errors.New("command: unknown opcode")
	ErrMalformedRequest = errors.New("command: malformed request")

	ErrUnknownPreimage = errors.New("command: unknown preimage hash")
	ErrUnknownRoot     = errors.New("command: unknown merkle root")
	ErrLeafNotFound    = errors.New("command: no leaf with requested hash")

	ErrQueueNotEmpty     = errors.New("command: continuation queue not drained")
	ErrQueueEmpty        = errors.New("command: no queued elements")
	ErrQueueInconsistent = errors.New("command: queued elements differ in length")

	ErrDerivation = errors.New("command: public key derivation failed")

	ErrPreimageTooLong = errors.New("command: preimage too long")
)

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
}
