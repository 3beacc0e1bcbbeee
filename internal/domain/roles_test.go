package domain

import (
	"fmt"
	"reflect"
	"testing"
)

func TestRolesFor(t *testing.T) {
	tests := []struct {
		n    int
		want []Role
	}{
		{n: 2, want: []Role{RolePresident, RoleAsshole}},
		{n: 3, want: []Role{RolePresident, RoleVicePresident, RoleAsshole}},
		{n: 4, want: []Role{RolePresident, RoleVicePresident, RoleViceAsshole, RoleAsshole}},
		{n: 5, want: []Role{RolePresident, RoleVicePresident, RoleNeutral, RoleViceAsshole, RoleAsshole}},
		{n: 6, want: []Role{RolePresident, RoleVicePresident, RoleNeutral, RoleNeutral, RoleViceAsshole, RoleAsshole}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players", tt.n), func(t *testing.T) {
			if got := RolesFor(tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("RolesFor(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestAssignRoles(t *testing.T) {
	ranking := make([]*Player, 5)
	for i := range ranking {
		ranking[i] = NewPlayer(string(rune('a'+i)), nil)
		ranking[i].Role = RoleAsshole
	}
	AssignRoles(ranking)

	want := []Role{RolePresident, RoleVicePresident, RoleNeutral, RoleViceAsshole, RoleAsshole}
	for i, p := range ranking {
		if p.Role != want[i] {
			t.Errorf("position %d role = %s, want %s", i, p.Role, want[i])
		}
	}
}

func TestSettle(t *testing.T) {
	ranking := make([]*Player, 4)
	for i := range ranking {
		ranking[i] = NewPlayer(string(rune('a'+i)), nil)
	}
	AssignRoles(ranking)

	points := Settle(ranking, nil)
	want := map[string]int64{"a": 2, "b": 1, "c": -1, "d": -2}
	if !reflect.DeepEqual(points, want) {
		t.Fatalf("Settle() = %v, want %v", points, want)
	}

	custom := Settle(ranking, RolePoints{RolePresident: 10})
	if custom["a"] != 10 || custom["d"] != 0 {
		t.Fatalf("custom points = %v", custom)
	}
}
