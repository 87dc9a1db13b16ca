package cart

// ClampQuantity keeps a cart quantity within [1, ceiling]. The ceiling
// only applies when stock is known and positive; otherwise the server
// is authoritative and the client enforces no upper bound.
func ClampQuantity(quantity, stock int) int {
	if quantity < 1 {
		quantity = 1
	}
	return clampCeiling(quantity, stock)
}

// ClampPickerQuantity is the catalog's pre-add picker variant: zero is
// permitted while the user is still choosing.
func ClampPickerQuantity(quantity, stock int) int {
	if quantity < 0 {
		quantity = 0
	}
	return clampCeiling(quantity, stock)
}

func clampCeiling(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		return stock
	}
	return quantity
}
