package vendors

import "context"

// Source fetches the vendor registry snapshot.
type Source interface {
	FetchAllVendors(ctx context.Context) ([]Vendor, error)
}

// RegistryVerifier answers verification checks against a fresh registry
// fetch. Verification gates commission overrides, so it must not rely on a
// possibly stale cached snapshot.
type RegistryVerifier struct {
	source Source
}

// NewRegistryVerifier builds a verifier over the vendor registry.
func NewRegistryVerifier(source Source) *RegistryVerifier {
	return &RegistryVerifier{source: source}
}

// Verified reports whether the vendor exists and is flagged verified.
func (v *RegistryVerifier) Verified(ctx context.Context, vendorID string) (bool, error) {
	snapshot, err := v.source.FetchAllVendors(ctx)
	if err != nil {
		return false, err
	}
	return NewDirectory(snapshot).Verified(vendorID), nil
}
