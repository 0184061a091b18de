// Package access decides, for a caller's (role, country) pair, which rows of
// a resource the caller may see or modify. Every service method goes through
// these functions instead of re-checking roles inline.
package access

import (
	"github.com/hooiv/foodorder/internal/database/models"
)

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID  string
	Email   string
	Role    models.Role
	Country models.Country
}

// Decision is the outcome of resolving a caller against a resource.
//
// Cross-country lookups deny differently by resource kind: restaurants and
// menu items deny as "not found" so their existence is not leaked across
// country boundaries, while orders and users deny as an explicit "forbidden".
// The split mirrors the upstream behavior on purpose; unifying it would be a
// one-line change here.
type Decision int

const (
	Allow Decision = iota
	DenyNotFound
	DenyForbidden
)

func (d Decision) Allowed() bool { return d == Allow }

// CountryVisible reports whether a resource in resourceCountry is visible to
// a caller in callerCountry. Match is exact equality with the global wildcard
// on either side; nothing is inferred from geography.
func CountryVisible(callerCountry, resourceCountry models.Country) bool {
	if callerCountry == models.CountryGlobal || resourceCountry == models.CountryGlobal {
		return true
	}
	return callerCountry == resourceCountry
}

// VisibleCountries returns the country values a caller's listings are limited
// to, or nil when the caller sees all rows (admin, or global country).
func VisibleCountries(caller Identity) []models.Country {
	if caller.Role == models.RoleAdmin || caller.Country == models.CountryGlobal {
		return nil
	}
	return []models.Country{caller.Country, models.CountryGlobal}
}

// ResolveRestaurant decides visibility of a restaurant (and, transitively, its
// menu items). Out-of-scope lookups read as absence.
func ResolveRestaurant(caller Identity, restaurantCountry models.Country) Decision {
	if caller.Role == models.RoleAdmin {
		return Allow
	}
	if CountryVisible(caller.Country, restaurantCountry) {
		return Allow
	}
	return DenyNotFound
}

// ResolveUser decides visibility of a user record. Out-of-scope lookups read
// as forbidden.
func ResolveUser(caller Identity, targetCountry models.Country) Decision {
	if caller.Role == models.RoleAdmin {
		return Allow
	}
	if CountryVisible(caller.Country, targetCountry) {
		return Allow
	}
	return DenyForbidden
}

// ResolveOrder decides visibility of an order given its owner. Members see
// only their own orders regardless of country; managers see orders owned by
// users of their country or by global users.
func ResolveOrder(caller Identity, ownerID string, ownerCountry models.Country) Decision {
	switch caller.Role {
	case models.RoleAdmin:
		return Allow
	case models.RoleManager:
		if CountryVisible(caller.Country, ownerCountry) {
			return Allow
		}
		return DenyForbidden
	default:
		if caller.UserID == ownerID {
			return Allow
		}
		return DenyForbidden
	}
}

// CanManageUser reports whether the caller may create or update a user with
// the given role and country. Managers are confined to their own country and
// may never mint admins.
func CanManageUser(caller Identity, targetRole models.Role, targetCountry models.Country) Decision {
	switch caller.Role {
	case models.RoleAdmin:
		return Allow
	case models.RoleManager:
		if targetRole == models.RoleAdmin {
			return DenyForbidden
		}
		if targetCountry != caller.Country {
			return DenyForbidden
		}
		return Allow
	default:
		return DenyForbidden
	}
}
