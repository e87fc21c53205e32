package enums

// ProductSort enumerates the catalog listing sort orders.
type ProductSort string

const (
	ProductSortName      ProductSort = "name"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortNewest    ProductSort = "newest"
)

var validProductSorts = []ProductSort{
	ProductSortName,
	ProductSortPriceAsc,
	ProductSortPriceDesc,
	ProductSortNewest,
}

// String implements fmt.Stringer.
func (p ProductSort) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductSort.
func (p ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductSort normalizes raw query input, falling back to name order.
func ParseProductSort(value string) ProductSort {
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate
		}
	}
	return ProductSortName
}
