package domain

// Category is the fixed beverage taxonomy a product can be classified into
type Category string

const (
	CategoryWater  Category = "water"
	CategoryTea    Category = "tea"
	CategoryCoffee Category = "coffee"
	CategorySoda   Category = "soda"

	// CategoryUnknown is the zero value; products whose free text matched
	// no classification rule stay unknown
	CategoryUnknown Category = ""
)

// UnknownVolume is the sentinel volume text used when no numeric volume
// could be extracted from the product's quantity field
const UnknownVolume = "unknown volume"

// UnknownProductName is the placeholder used when the upstream record
// carries no product name
const UnknownProductName = "Unknown product"

// ProductRecord represents resolved product metadata keyed by barcode.
// Records are immutable once constructed; a fresh lookup for the same
// barcode replaces the cached record wholesale, never field by field.
type ProductRecord struct {
	Barcode    string   `json:"barcode"`
	Name       string   `json:"name"`
	VolumeText string   `json:"volumeText"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Category   Category `json:"category,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}
