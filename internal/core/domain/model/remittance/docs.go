// Package remittance models COD payout cycles. A remittance aggregates the
// cash collected by vendors for one seller on one delivery date.
package remittance
