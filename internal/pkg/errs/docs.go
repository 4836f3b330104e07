// Package errs provides standardized error types for the courier aggregation
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// Two families of errors live here:
//
//   - generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError)
//   - logistics errors (UnknownPincodeError, InvalidProfileError,
//     InvalidTransitionError, VendorUnavailableError,
//     CapabilityUnsupportedError)
//
// Each error type follows the same pattern: a sentinel error variable, a
// struct with fields for error details, constructor functions, an Error()
// method for formatting, and an Unwrap() method so errors.Is can classify
// any error against its sentinel.
package errs
