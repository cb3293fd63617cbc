package models

import (
	"fmt"
	"strings"
)

// Role selects which dashboard a workspace shows.
type Role string

const (
	RoleNone    Role = ""
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleDoctor, RolePatient:
		return r, nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
}
