package domain

// RolePoints maps a role to the points it earns at the end of a round.
type RolePoints map[Role]int64

// DefaultRolePoints rewards the top of the ranking and penalizes the bottom.
func DefaultRolePoints() RolePoints {
	return RolePoints{
		RolePresident:     2,
		RoleVicePresident: 1,
		RoleNeutral:       0,
		RoleViceAsshole:   -1,
		RoleAsshole:       -2,
	}
}

// Settle returns the points earned by each player ID for a ranked round.
// Roles must already be assigned.
func Settle(ranking []*Player, points RolePoints) map[string]int64 {
	if points == nil {
		points = DefaultRolePoints()
	}
	out := make(map[string]int64, len(ranking))
	for _, p := range ranking {
		out[p.ID] += points[p.Role]
	}
	return out
}
