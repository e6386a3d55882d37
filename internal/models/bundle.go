package models

// Network enumerates the telecom networks a bundle can belong to.
type Network string

const (
	NetworkMTN     Network = "MTN"
	NetworkTelecel Network = "Telecel"
	NetworkAT      Network = "AT"
	NetworkAFA     Network = "AFA"
)

// Bundle represents a purchasable data bundle in the catalog.
// Catalog entries are immutable reference data loaded from the bundle file;
// the purchase flow never writes back to them.
type Bundle struct {
	ID          string  `json:"id"`
	Network     string  `json:"network"`
	Title       string  `json:"title"`
	SizeMB      *int    `json:"sizeMB,omitempty"`
	Price       float64 `json:"price"`
	Badge       string  `json:"badge,omitempty"`
	Expires     bool    `json:"expires"`
	ExpiryNote  string  `json:"expiry_note"`
	Description string  `json:"description,omitempty"`
}

// Category describes a bundle listing category derived from the distinct
// networks present in the catalog.
type Category struct {
	Network string `json:"network"`
	Slug    string `json:"slug"`
	Label   string `json:"label"`
	Badge   string `json:"badge"`
	Icon    string `json:"icon"`
}
