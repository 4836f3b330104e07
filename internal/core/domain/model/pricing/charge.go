package pricing

import "github.com/shopspring/decimal"

// Charge is the result of pricing one shipment against one vendor profile.
type Charge struct {
	Freight decimal.Decimal
	CODFee  decimal.Decimal
	Total   decimal.Decimal
}
