// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"courierhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RemittanceRepoFactory provides access to remittance repository within a transaction.
	RemittanceRepoFactory interface {
		RemittanceRepository() ports.RemittanceRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RemittanceUoW manages transactions spanning orders and remittances.
	// The remittance cycle reads delivered orders and writes payout records
	// in one transaction.
	RemittanceUoW interface {
		TxManager
		OrderRepoFactory
		RemittanceRepoFactory
	}

	// RemittanceUoWFactory creates new remittance unit of work instances.
	RemittanceUoWFactory interface {
		Create() RemittanceUoW
	}
)
