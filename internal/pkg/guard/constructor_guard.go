// Package guard provides a defensive construction pattern for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable, so validation can enforce that objects are only created through
// their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation
// error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// constructor. The zero value fails validation.
//
// Example:
//
//	type Pincode struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPincode(code string) (Pincode, error) {
//	    if len(code) != 6 {
//	        return Pincode{}, errors.New("pincode must be 6 digits")
//	    }
//	    return Pincode{code: code, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Pincode) Validate() error {
//	    return p.guard.Validate(ErrPincodeIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed guards. For zero-value guards it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
