package analytics

// Classification is the stock health of a single product.
type Classification string

const (
	OutOfStock Classification = "OUT_OF_STOCK"
	LowStock   Classification = "LOW_STOCK"
	InStock    Classification = "IN_STOCK"
)

// Classify returns exactly one classification for the given quantity and
// threshold. A quantity equal to the threshold is low stock; zero is always
// out of stock whatever the threshold.
func Classify(quantity, minStock int) Classification {
	switch {
	case quantity == 0:
		return OutOfStock
	case quantity <= minStock:
		return LowStock
	default:
		return InStock
	}
}

// ParseClassification accepts both the canonical names and the labels used
// by the UI filters ("Low Stock", "Out of Stock", "In Stock").
func ParseClassification(s string) (Classification, bool) {
	switch s {
	case string(OutOfStock), "Out of Stock":
		return OutOfStock, true
	case string(LowStock), "Low Stock":
		return LowStock, true
	case string(InStock), "In Stock":
		return InStock, true
	}
	return "", false
}
