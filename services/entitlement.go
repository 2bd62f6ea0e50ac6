package services

import "coursehive_server/utils"

// ProUpgradeURL is where non-premium users are routed to upgrade.
const ProUpgradeURL = "/pro"

type EntitlementDecision struct {
	Allowed     bool
	RedirectURL string
}

// DecideEntitlement is the pure gate over verified session claims: premium
// sessions pass, everything else is routed to the upgrade flow. It never
// consults storage.
func DecideEntitlement(claims *utils.SessionClaims) EntitlementDecision {
	if claims == nil || !claims.IsPremium {
		return EntitlementDecision{Allowed: false, RedirectURL: ProUpgradeURL}
	}
	return EntitlementDecision{Allowed: true}
}
