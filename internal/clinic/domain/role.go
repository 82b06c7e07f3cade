package domain

import "fmt"

// Role is the closed set of account roles. Business logic never compares the
// underlying string directly; authorization decisions go through the policy
// package.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleTherapist Role = "Therapist"
)

// ParseRole validates a raw role string coming off the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTherapist:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}
