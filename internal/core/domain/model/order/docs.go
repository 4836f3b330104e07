// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order is created by a seller (or ingested from a sales channel), priced
// across courier vendors, booked with one of them, and then driven through a
// finite bucket lifecycle by status events arriving from vendor webhooks and
// scheduled polling. Forward orders and reverse (return) orders follow two
// disjoint state graphs selected by the order's reverse flag at creation.
//
// The stage history is append-only; the current bucket is always the bucket
// of the last history entry, and duplicate event delivery is absorbed without
// growing the history.
package order
