package services

import (
	"testing"

	"coursehive_server/utils"
)

func TestDecideEntitlement_Premium(t *testing.T) {
	decision := DecideEntitlement(&utils.SessionClaims{UserID: 1, IsPremium: true})
	if !decision.Allowed {
		t.Fatalf("expected premium session to be allowed")
	}
	if decision.RedirectURL != "" {
		t.Fatalf("expected no redirect for premium session, got %q", decision.RedirectURL)
	}
}

func TestDecideEntitlement_Free(t *testing.T) {
	decision := DecideEntitlement(&utils.SessionClaims{UserID: 1, IsPremium: false})
	if decision.Allowed {
		t.Fatalf("expected free session to be gated")
	}
	if decision.RedirectURL != ProUpgradeURL {
		t.Fatalf("expected redirect to %q, got %q", ProUpgradeURL, decision.RedirectURL)
	}
}

func TestDecideEntitlement_NoClaims(t *testing.T) {
	decision := DecideEntitlement(nil)
	if decision.Allowed {
		t.Fatalf("expected missing claims to be gated")
	}
	if decision.RedirectURL != ProUpgradeURL {
		t.Fatalf("expected redirect to %q, got %q", ProUpgradeURL, decision.RedirectURL)
	}
}
