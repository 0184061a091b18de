package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hooiv/foodorder/internal/database/models"
)

var allCountries = []models.Country{
	models.CountryGlobal,
	models.CountryIndia,
	models.CountryAmerica,
}

func TestCountryVisible(t *testing.T) {
	for _, caller := range allCountries {
		for _, resource := range allCountries {
			want := caller == resource ||
				caller == models.CountryGlobal ||
				resource == models.CountryGlobal
			assert.Equal(t, want, CountryVisible(caller, resource),
				"caller=%s resource=%s", caller, resource)
		}
	}
}

func TestVisibleCountries(t *testing.T) {
	admin := Identity{Role: models.RoleAdmin, Country: models.CountryIndia}
	assert.Nil(t, VisibleCountries(admin), "admin sees all rows")

	globalManager := Identity{Role: models.RoleManager, Country: models.CountryGlobal}
	assert.Nil(t, VisibleCountries(globalManager), "global caller sees all rows")

	indiaMember := Identity{Role: models.RoleMember, Country: models.CountryIndia}
	assert.Equal(t,
		[]models.Country{models.CountryIndia, models.CountryGlobal},
		VisibleCountries(indiaMember))
}

func TestResolveRestaurantHidesExistence(t *testing.T) {
	roles := []models.Role{models.RoleAdmin, models.RoleManager, models.RoleMember}

	for _, role := range roles {
		for _, callerCountry := range allCountries {
			for _, restaurantCountry := range allCountries {
				caller := Identity{Role: role, Country: callerCountry}
				got := ResolveRestaurant(caller, restaurantCountry)

				if role == models.RoleAdmin || CountryVisible(callerCountry, restaurantCountry) {
					assert.Equal(t, Allow, got,
						"role=%s caller=%s restaurant=%s", role, callerCountry, restaurantCountry)
				} else {
					// Never forbidden: a cross-country restaurant must look absent.
					assert.Equal(t, DenyNotFound, got,
						"role=%s caller=%s restaurant=%s", role, callerCountry, restaurantCountry)
				}
			}
		}
	}
}

func TestResolveUserDeniesAsForbidden(t *testing.T) {
	manager := Identity{Role: models.RoleManager, Country: models.CountryAmerica}
	assert.Equal(t, DenyForbidden, ResolveUser(manager, models.CountryIndia))
	assert.Equal(t, Allow, ResolveUser(manager, models.CountryAmerica))
	assert.Equal(t, Allow, ResolveUser(manager, models.CountryGlobal))

	admin := Identity{Role: models.RoleAdmin, Country: models.CountryIndia}
	assert.Equal(t, Allow, ResolveUser(admin, models.CountryAmerica))
}

func TestResolveOrder(t *testing.T) {
	const ownerID = "owner-1"

	t.Run("admin sees any order", func(t *testing.T) {
		admin := Identity{UserID: "a", Role: models.RoleAdmin, Country: models.CountryIndia}
		assert.Equal(t, Allow, ResolveOrder(admin, ownerID, models.CountryAmerica))
	})

	t.Run("manager scoped by owner country", func(t *testing.T) {
		manager := Identity{UserID: "m", Role: models.RoleManager, Country: models.CountryIndia}
		assert.Equal(t, Allow, ResolveOrder(manager, ownerID, models.CountryIndia))
		assert.Equal(t, Allow, ResolveOrder(manager, ownerID, models.CountryGlobal))
		assert.Equal(t, DenyForbidden, ResolveOrder(manager, ownerID, models.CountryAmerica))
	})

	t.Run("member sees only own orders", func(t *testing.T) {
		owner := Identity{UserID: ownerID, Role: models.RoleMember, Country: models.CountryIndia}
		assert.Equal(t, Allow, ResolveOrder(owner, ownerID, models.CountryIndia))

		other := Identity{UserID: "other", Role: models.RoleMember, Country: models.CountryIndia}
		assert.Equal(t, DenyForbidden, ResolveOrder(other, ownerID, models.CountryIndia),
			"same country is not enough for members")
	})
}

func TestCanManageUser(t *testing.T) {
	admin := Identity{Role: models.RoleAdmin, Country: models.CountryGlobal}
	manager := Identity{Role: models.RoleManager, Country: models.CountryIndia}
	member := Identity{Role: models.RoleMember, Country: models.CountryIndia}

	assert.Equal(t, Allow, CanManageUser(admin, models.RoleAdmin, models.CountryAmerica))

	assert.Equal(t, Allow, CanManageUser(manager, models.RoleMember, models.CountryIndia))
	assert.Equal(t, DenyForbidden, CanManageUser(manager, models.RoleAdmin, models.CountryIndia),
		"managers cannot mint admins")
	assert.Equal(t, DenyForbidden, CanManageUser(manager, models.RoleMember, models.CountryAmerica),
		"managers confined to their country")

	assert.Equal(t, DenyForbidden, CanManageUser(member, models.RoleMember, models.CountryIndia))
}
