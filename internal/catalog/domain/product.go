package domain

// Category is the closed set of part categories the store sells.
type Category string

const (
	CategoryCPU         Category = "CPU"
	CategoryGPU         Category = "GPU"
	CategoryMotherboard Category = "Motherboard"
	CategoryRAM         Category = "RAM"
	CategoryStorage     Category = "Storage"
	CategoryPowerSupply Category = "Power Supply"
	CategoryCase        Category = "Case"
	CategoryCooling     Category = "Cooling"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryCPU,
		CategoryGPU,
		CategoryMotherboard,
		CategoryRAM,
		CategoryStorage,
		CategoryPowerSupply,
		CategoryCase,
		CategoryCooling,
	}
}

// IsValidCategory checks whether the given string is a valid category label.
func IsValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Review is a customer review attached to a product.
type Review struct {
	ID      int          `json:"id"`
	User    ReviewAuthor `json:"user"`
	Rating  int          `json:"rating"`
	Date    string       `json:"date"`
	Comment string       `json:"comment"`
}

// ReviewAuthor identifies the author of a review.
type ReviewAuthor struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Product describes a sellable item in the catalog. Products are owned by the
// data provider; the cart and query layers never mutate them.
type Product struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Price              float64           `json:"price"`
	Description        string            `json:"description"`
	Category           Category          `json:"category"`
	Stock              int               `json:"stock"`
	Image              string            `json:"image"`
	Specifications     map[string]string `json:"specifications"`
	Brand              string            `json:"brand"`
	Model              string            `json:"model"`
	DiscountPercentage float64           `json:"discountPercentage"`
	Rating             *float64          `json:"rating,omitempty"`
	Reviews            []Review          `json:"reviews,omitempty"`
	Images             []string          `json:"images,omitempty"`
	Featured           bool              `json:"-"`
}

// InStock reports whether the product has units available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// DiscountedPrice returns the effective price after the discount percentage.
// The cart total intentionally uses the listed Price; discounts are a
// presentation concern.
func (p *Product) DiscountedPrice() float64 {
	if p.DiscountPercentage <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.DiscountPercentage/100)
}
