package model

import (
	"sort"
	"strings"
)

type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// ParseRole accepts both the bare and the "ROLE_" prefixed spelling.
func ParseRole(s string) (Role, bool) {
	switch strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_") {
	case "USER":
		return RoleUser, true
	case "ADMIN":
		return RoleAdmin, true
	default:
		return 0, false
	}
}

type RoleSet map[Role]struct{}

// ParseRoles drops names outside the known set.
func ParseRoles(names []string) RoleSet {
	set := make(RoleSet, len(names))
	for _, n := range names {
		if r, ok := ParseRole(n); ok {
			set[r] = struct{}{}
		}
	}
	return set
}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s RoleSet) Clone() RoleSet {
	out := make(RoleSet, len(s))
	for r := range s {
		out[r] = struct{}{}
	}
	return out
}
