package order

import (
	"fmt"

	"courierhub/internal/pkg/errs"
)

// PaymentMode distinguishes prepaid shipments from cash-on-delivery ones.
// COD orders must carry a positive collectable amount and attract a COD fee
// during pricing.
type PaymentMode int

const (
	// PaymentUnknown represents an invalid or undefined payment mode.
	PaymentUnknown PaymentMode = iota

	// PaymentPrepaid means payment was collected before shipping.
	PaymentPrepaid

	// PaymentCOD means the courier collects payment on delivery.
	PaymentCOD
)

// PaymentModeFromWire maps the wire encoding (0 = prepaid, 1 = COD) used by
// seller-facing payloads to a PaymentMode.
func PaymentModeFromWire(v int) (PaymentMode, error) {
	switch v {
	case 0:
		return PaymentPrepaid, nil
	case 1:
		return PaymentCOD, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment mode",
			fmt.Errorf("%d is not a valid payment mode", v))
	}
}

// String returns a human-readable name for the payment mode.
func (m PaymentMode) String() string {
	switch m {
	case PaymentPrepaid:
		return "PREPAID"
	case PaymentCOD:
		return "COD"
	default:
		return "Unknown"
	}
}

// Validate checks that the payment mode is one of the defined values.
func (m PaymentMode) Validate() error {
	if m != PaymentPrepaid && m != PaymentCOD {
		return errs.NewValueIsInvalidErrorWithCause("payment mode",
			fmt.Errorf("%d is not a valid payment mode", int(m)))
	}
	return nil
}
