package vendors

const (
	// UnknownVendorName is returned when a vendor cannot be resolved. Vendor
	// data may be unavailable because the caller lacks permission to read the
	// registry, so this is a degrade path, not an error.
	UnknownVendorName  = "Unknown Vendor"
	UnknownVendorEmail = "unknown@example.com"
)

// Directory resolves vendor identifiers against a bulk-loaded snapshot.
type Directory struct {
	byID map[string]*Vendor
}

// NewDirectory indexes the snapshot by both identifier fields. A nil or empty
// snapshot yields a directory that resolves everything to the unknown sentinel.
func NewDirectory(snapshot []Vendor) *Directory {
	dir := &Directory{byID: make(map[string]*Vendor, len(snapshot))}
	for i := range snapshot {
		vendor := &snapshot[i]
		if vendor.ID != "" {
			dir.byID[vendor.ID] = vendor
		}
		if vendor.VendorID != "" && vendor.VendorID != vendor.ID {
			dir.byID[vendor.VendorID] = vendor
		}
	}
	return dir
}

// Resolve returns display metadata for the vendor, or the unknown sentinel
// when the identifier has no match.
func (d *Directory) Resolve(vendorID string) VendorInfo {
	if d != nil {
		if vendor, ok := d.byID[vendorID]; ok {
			return VendorInfo{
				Name:   DisplayName(vendor),
				Email:  vendor.Email,
				Stores: vendor.Stores,
			}
		}
	}
	return VendorInfo{Name: UnknownVendorName, Email: UnknownVendorEmail}
}

// Verified reports whether the vendor exists and is flagged verified.
func (d *Directory) Verified(vendorID string) bool {
	if d == nil {
		return false
	}
	vendor, ok := d.byID[vendorID]
	return ok && vendor.Verified
}

// StoreName returns the vendor's authoritative name for the store, or ok=false
// when the vendor or store is unknown.
func (d *Directory) StoreName(vendorID, storeID string) (string, bool) {
	if d == nil {
		return "", false
	}
	vendor, ok := d.byID[vendorID]
	if !ok {
		return "", false
	}
	for _, store := range vendor.Stores {
		if store.ID == storeID && store.Name != "" {
			return store.Name, true
		}
	}
	return "", false
}

// DisplayName picks the vendor's presentation name through an ordered
// fallback: display name, business name, email, unknown sentinel.
func DisplayName(vendor *Vendor) string {
	if vendor == nil {
		return UnknownVendorName
	}
	if vendor.DisplayName != "" {
		return vendor.DisplayName
	}
	if vendor.BusinessName != "" {
		return vendor.BusinessName
	}
	if vendor.Email != "" {
		return vendor.Email
	}
	return UnknownVendorName
}
