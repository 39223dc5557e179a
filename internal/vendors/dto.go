package vendors

// Vendor is the upstream vendor registry's record for one marketplace seller.
// The registry is inconsistent about identifier naming, so lookups must
// tolerate both ID and VendorID carrying the canonical identifier.
type Vendor struct {
	ID           string  `json:"id,omitempty"`
	VendorID     string  `json:"vendor_id,omitempty"`
	DisplayName  string  `json:"display_name,omitempty"`
	BusinessName string  `json:"business_name,omitempty"`
	Email        string  `json:"email,omitempty"`
	Verified     bool    `json:"verified"`
	Stores       []Store `json:"stores,omitempty"`
}

// Store is one storefront operated by a vendor.
type Store struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// VendorInfo is the resolved display metadata handed to report consumers.
type VendorInfo struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Stores []Store `json:"stores"`
}
