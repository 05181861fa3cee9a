package sequence

import "github.com/factoryops/backend/internal/domain/shared"

// Tier names as they appear in token claims
const (
	TierNameOperator      = "operator"
	TierNameSupervisor    = "supervisor"
	TierNameAdministrator = "administrator"
)

// ParseTier converts a claim string into a PrivilegeTier.
// Unknown values are rejected rather than defaulting to the lowest tier.
func ParseTier(name string) (PrivilegeTier, error) {
	switch name {
	case TierNameOperator:
		return TierOperator, nil
	case TierNameSupervisor:
		return TierSupervisor, nil
	case TierNameAdministrator:
		return TierAdministrator, nil
	default:
		return TierOperator, shared.NewValidationError("unknown privilege tier")
	}
}

// String returns the claim representation of a tier
func (t PrivilegeTier) String() string {
	switch t {
	case TierSupervisor:
		return TierNameSupervisor
	case TierAdministrator:
		return TierNameAdministrator
	default:
		return TierNameOperator
	}
}
