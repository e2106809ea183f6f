package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" cajero ")
	require.NoError(t, err)
	assert.Equal(t, RoleCajero, r)
	assert.Equal(t, "Cajero", r.String())

	_, err = ParseRole("Chef")
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Equal(t, "Desconocido", RoleUnknown.String())
}

func TestCan(t *testing.T) {
	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSuperadmin, PermManageUsers, true},
		{RoleAdministrador, PermManageUsers, false},
		{RoleCajero, PermBilling, true},
		{RoleMesero, PermBilling, false},
		{RoleEmpleado, PermBilling, false},
		{RoleMesero, PermViewInventory, true},
		{RoleCajero, PermEditInventory, false},
		{RoleAdministrador, PermEditInventory, true},
		{RoleEmpleado, PermReports, true},
		{RoleMesero, PermReports, false},
		{RoleCajero, PermReportsAnyPeriod, false},
		{RoleAdministrador, PermReportsAnyPeriod, true},
		{RoleCajero, PermPurchases, true},
		{RoleUnknown, PermDashboard, false},
	}
	for _, tc := range cases {
		t.Run(tc.role.String()+"/"+tc.perm.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, Can(tc.role, tc.perm))
		})
	}
}

func TestPermissions(t *testing.T) {
	assert.Equal(t, []Permission{PermDashboard, PermViewInventory, PermReports}, Permissions(RoleEmpleado))
	assert.Len(t, Permissions(RoleSuperadmin), 9)
	assert.Empty(t, Permissions(RoleUnknown))
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), Session{User: "ana", Role: RoleCajero})
	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "ana", s.User)
	assert.True(t, s.Can(PermBilling))
}
