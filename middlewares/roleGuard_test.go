package middlewares

import (
	"testing"

	"fixmydistrict-be/models"
)

func TestDecide(t *testing.T) {
	citizen := &models.User{Role: models.RoleCitizen}
	mla := &models.User{Role: models.RoleMLA}
	admin := &models.User{Role: models.RoleAdmin}

	cases := []struct {
		name        string
		hasIdentity bool
		profile     *models.User
		allowed     []models.Role
		expected    GuardDecision
	}{
		{"no identity", false, nil, []models.Role{models.RoleCitizen}, GuardUnauthenticated},
		{"identity but no profile", true, nil, []models.Role{models.RoleCitizen}, GuardUnauthenticated},
		{"citizen on citizen route", true, citizen, []models.Role{models.RoleCitizen, models.RoleMLA}, GuardAuthorized},
		{"mla on citizen route", true, mla, []models.Role{models.RoleCitizen, models.RoleMLA}, GuardAuthorized},
		{"citizen on admin route", true, citizen, []models.Role{models.RoleAdmin}, GuardWrongRole},
		{"mla on admin route", true, mla, []models.Role{models.RoleAdmin}, GuardWrongRole},
		{"admin on admin route", true, admin, []models.Role{models.RoleAdmin}, GuardAuthorized},
		{"citizen on mla route", true, citizen, []models.Role{models.RoleMLA}, GuardWrongRole},
		{"empty allowed set", true, citizen, nil, GuardWrongRole},
	}

	for _, tc := range cases {
		got := Decide(tc.hasIdentity, tc.profile, tc.allowed)
		if got != tc.expected {
			t.Errorf("%s: Decide() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestDecideRendersIffRoleAllowed(t *testing.T) {
	roles := []models.Role{models.RoleCitizen, models.RoleMLA, models.RoleAdmin}

	for _, have := range roles {
		for _, want := range roles {
			profile := &models.User{Role: have}
			got := Decide(true, profile, []models.Role{want})
			if have == want && got != GuardAuthorized {
				t.Errorf("role %s on %s-only route: expected authorized, got %v", have, want, got)
			}
			if have != want && got != GuardWrongRole {
				t.Errorf("role %s on %s-only route: expected wrong role, got %v", have, want, got)
			}
		}
	}
}

func TestRoleHome(t *testing.T) {
	cases := []struct {
		role     models.Role
		expected string
	}{
		{models.RoleAdmin, "/admin/dashboard"},
		{models.RoleMLA, "/mla/dashboard"},
		{models.RoleCitizen, "/dashboard"},
		{models.Role("unknown"), "/dashboard"},
	}

	for _, tc := range cases {
		if got := RoleHome(tc.role); got != tc.expected {
			t.Errorf("RoleHome(%q) = %q, expected %q", tc.role, got, tc.expected)
		}
	}
}
