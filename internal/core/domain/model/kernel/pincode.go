package kernel

import (
	"fmt"

	"courierhub/internal/pkg/errs"

	"courierhub/internal/pkg/guard"
)

// ErrPincodeIsNotConstructed is returned when validating a zero-value Pincode.
// Pincodes must be created via the NewPincode constructor.
var ErrPincodeIsNotConstructed = errs.NewValueIsRequiredError("pincode must be created via NewPincode")

// pincodeLength is the fixed length of an Indian postal code.
const pincodeLength = 6

// Pincode is a value object representing an Indian postal code. It is the key
// for zone classification: every origin/destination pair is resolved through
// the pincode directory before pricing.
//
// The zero value is invalid; use NewPincode.
type Pincode struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewPincode creates a Pincode from its string form. The code must be exactly
// six digits; the first digit cannot be zero (no Indian postal circle uses it).
func NewPincode(code string) (Pincode, error) {
	if code == "" {
		return Pincode{}, errs.NewValueIsRequiredError("pincode")
	}
	if len(code) != pincodeLength {
		return Pincode{}, errs.NewValueIsInvalidErrorWithCause("pincode",
			fmt.Errorf("%q is not %d characters", code, pincodeLength))
	}
	for i, r := range code {
		if r < '0' || r > '9' {
			return Pincode{}, errs.NewValueIsInvalidErrorWithCause("pincode",
				fmt.Errorf("%q contains a non-digit character", code))
		}
		if i == 0 && r == '0' {
			return Pincode{}, errs.NewValueIsInvalidErrorWithCause("pincode",
				fmt.Errorf("%q starts with zero", code))
		}
	}

	return Pincode{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the six-digit code.
func (p Pincode) String() string {
	return p.code
}

// IsEqual compares two pincodes by code.
func (p Pincode) IsEqual(other Pincode) bool {
	return p.code == other.code
}

// Validate ensures the Pincode was created through NewPincode.
func (p Pincode) Validate() error {
	return p.guard.Validate(ErrPincodeIsNotConstructed)
}
