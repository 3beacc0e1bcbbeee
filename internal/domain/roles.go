package domain

// RolesFor returns the role of each ranking position for n players.
// President and Asshole win over the vice roles when positions coincide.
func RolesFor(n int) []Role {
	roles := make([]Role, n)
	if n == 0 {
		return roles
	}
	assigned := make([]bool, n)
	set := func(i int, r Role) {
		if i < 0 || i >= n || assigned[i] {
			return
		}
		roles[i] = r
		assigned[i] = true
	}
	set(0, RolePresident)
	set(n-1, RoleAsshole)
	set(1, RoleVicePresident)
	set(n-2, RoleViceAsshole)
	return roles
}

// AssignRoles sets each player's role from its position in ranking.
func AssignRoles(ranking []*Player) {
	for i, r := range RolesFor(len(ranking)) {
		ranking[i].Role = r
	}
}
