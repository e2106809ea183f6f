// Package session carries the authenticated operator through a request and
// answers which screens a role may use.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Role int

const (
	RoleUnknown Role = iota
	RoleSuperadmin
	RoleAdministrador
	RoleCajero
	RoleMesero
	RoleEmpleado
)

var roleNames = map[Role]string{
	RoleSuperadmin:    "Superadmin",
	RoleAdministrador: "Administrador",
	RoleCajero:        "Cajero",
	RoleMesero:        "Mesero",
	RoleEmpleado:      "Empleado",
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return "Desconocido"
}

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for r, n := range roleNames {
		if strings.EqualFold(n, s) {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

type Permission int

const (
	PermDashboard Permission = iota
	PermViewInventory
	PermEditInventory
	PermPurchases
	PermBilling
	PermPrintReceipt
	PermManageUsers
	PermReports
	PermReportsAnyPeriod
)

var permNames = map[Permission]string{
	PermDashboard:        "dashboard",
	PermViewInventory:    "view_inventory",
	PermEditInventory:    "edit_inventory",
	PermPurchases:        "purchases",
	PermBilling:          "billing",
	PermPrintReceipt:     "print_receipt",
	PermManageUsers:      "manage_users",
	PermReports:          "reports",
	PermReportsAnyPeriod: "reports_any_period",
}

func (p Permission) String() string { return permNames[p] }

var allowed = map[Permission][]Role{
	PermDashboard:        {RoleSuperadmin, RoleAdministrador, RoleCajero, RoleMesero, RoleEmpleado},
	PermViewInventory:    {RoleSuperadmin, RoleAdministrador, RoleCajero, RoleMesero, RoleEmpleado},
	PermEditInventory:    {RoleSuperadmin, RoleAdministrador},
	PermPurchases:        {RoleSuperadmin, RoleAdministrador, RoleCajero},
	PermBilling:          {RoleSuperadmin, RoleAdministrador, RoleCajero},
	PermPrintReceipt:     {RoleSuperadmin, RoleAdministrador, RoleCajero},
	PermManageUsers:      {RoleSuperadmin},
	PermReports:          {RoleSuperadmin, RoleAdministrador, RoleCajero, RoleEmpleado},
	PermReportsAnyPeriod: {RoleSuperadmin, RoleAdministrador},
}

// Can reports whether role r holds permission p.
func Can(r Role, p Permission) bool {
	for _, a := range allowed[p] {
		if a == r {
			return true
		}
	}
	return false
}

// Permissions lists what r holds, in declaration order.
func Permissions(r Role) []Permission {
	var out []Permission
	for p := PermDashboard; p <= PermReportsAnyPeriod; p++ {
		if Can(r, p) {
			out = append(out, p)
		}
	}
	return out
}

// Session is the operator identity for one request. It is a value; nothing
// mutates it after construction.
type Session struct {
	User string
	Role Role
}

func (s Session) Can(p Permission) bool { return Can(s.Role, p) }

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
