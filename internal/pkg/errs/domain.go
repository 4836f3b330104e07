package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the logistics-specific error categories.
var (
	ErrUnknownPincode        = errors.New("unknown pincode")
	ErrInvalidProfile        = errors.New("pricing profile is invalid")
	ErrInvalidTransition     = errors.New("invalid lifecycle transition")
	ErrVendorUnavailable     = errors.New("vendor unavailable")
	ErrCapabilityUnsupported = errors.New("capability unsupported")
)

// UnknownPincodeError indicates a pincode is absent from the loaded pincode
// directory. Pricing must treat this as a hard stop; there is no default zone.
type UnknownPincodeError struct {
	Pincode string
}

// NewUnknownPincodeError creates an UnknownPincodeError for the given pincode.
func NewUnknownPincodeError(pincode string) *UnknownPincodeError {
	return &UnknownPincodeError{Pincode: pincode}
}

func (e *UnknownPincodeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownPincode, e.Pincode)
}

func (e *UnknownPincodeError) Unwrap() error {
	return ErrUnknownPincode
}

// InvalidProfileError indicates a pricing profile cannot serve a computation,
// usually because the rate table for the resolved zone is missing.
type InvalidProfileError struct {
	VendorID string
	Reason   string
}

// NewInvalidProfileError creates an InvalidProfileError for a vendor profile.
func NewInvalidProfileError(vendorID, reason string) *InvalidProfileError {
	return &InvalidProfileError{VendorID: vendorID, Reason: reason}
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("%s: vendor %s: %s", ErrInvalidProfile, e.VendorID, e.Reason)
}

func (e *InvalidProfileError) Unwrap() error {
	return ErrInvalidProfile
}

// InvalidTransitionError indicates a status event named a stage that is not a
// successor of the order's current bucket. The order is left unchanged.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// attempted from -> to move.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// VendorUnavailableError indicates a vendor call timed out or returned a
// non-success response after retries were exhausted. Recoverable; it never
// aborts sibling vendor calls.
type VendorUnavailableError struct {
	VendorID string
	Cause    error
}

// NewVendorUnavailableError creates a VendorUnavailableError carrying the
// failing vendor's id and the underlying cause.
func NewVendorUnavailableError(vendorID string, cause error) *VendorUnavailableError {
	return &VendorUnavailableError{VendorID: vendorID, Cause: cause}
}

func (e *VendorUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: vendor %s (cause: %s)", ErrVendorUnavailable, e.VendorID, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: vendor %s", ErrVendorUnavailable, e.VendorID)
}

func (e *VendorUnavailableError) Unwrap() error {
	return ErrVendorUnavailable
}

// CapabilityUnsupportedError indicates a caller invoked an operation the
// vendor gateway does not implement. This is a programming error on the
// caller's side; availability must be checked with Supports first.
type CapabilityUnsupportedError struct {
	VendorID   string
	Capability string
}

// NewCapabilityUnsupportedError creates a CapabilityUnsupportedError.
func NewCapabilityUnsupportedError(vendorID, capability string) *CapabilityUnsupportedError {
	return &CapabilityUnsupportedError{VendorID: vendorID, Capability: capability}
}

func (e *CapabilityUnsupportedError) Error() string {
	return fmt.Sprintf("%s: vendor %s does not support %s", ErrCapabilityUnsupported, e.VendorID, e.Capability)
}

func (e *CapabilityUnsupportedError) Unwrap() error {
	return ErrCapabilityUnsupported
}
