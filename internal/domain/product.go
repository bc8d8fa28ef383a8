package domain

// ProductStatus is the lifecycle state of a catalog entry.
// Only active products are purchasable.
type ProductStatus string

const (
	ProductStatusDraft      ProductStatus = "draft"
	ProductStatusActive     ProductStatus = "active"
	ProductStatusArchived   ProductStatus = "archived"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// ValidProductStatus reports whether s is a known product status.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusArchived, ProductStatusOutOfStock:
		return true
	}
	return false
}
