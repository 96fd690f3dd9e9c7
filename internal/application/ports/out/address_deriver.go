package out

import (
	valueobjects "sweepvault/internal/domain/value_objects"
)

// AddressDeriver maps a salt to the account address it will be activated
// at. Implementations must be pure: no state, no side effects, and the
// same salt always derives the same address.
type AddressDeriver interface {
	Derive(salt valueobjects.Salt) valueobjects.Address
}
