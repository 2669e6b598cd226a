package material

import "github.com/shopspring/decimal"

// ApplyInMovement adds an IN quantity to a stock balance.
func ApplyInMovement(stock, quantity decimal.Decimal) decimal.Decimal {
	return stock.Add(quantity)
}

// ApplyOutMovement subtracts an OUT quantity from a stock balance, clamping
// at zero. Warehouse operations are not blocked by shortfall at the ledger
// layer; the request-approval workflow is the layer that rejects overdraws.
// Swapping this for a strict-reject policy changes no call sites.
func ApplyOutMovement(stock, quantity decimal.Decimal) decimal.Decimal {
	return clampStock(stock.Sub(quantity))
}

// ApplyDelta applies a signed stock delta with the same zero floor. Used when
// a ledger entry is edited (delta = new - old) or deleted (reverse of the
// original entry).
func ApplyDelta(stock, delta decimal.Decimal) decimal.Decimal {
	return clampStock(stock.Add(delta))
}

func clampStock(stock decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		return decimal.Zero
	}
	return stock
}
