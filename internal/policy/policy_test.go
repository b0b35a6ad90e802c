package policy

import (
	"fmt"
	"testing"

	"problemas/internal/models"

	"github.com/stretchr/testify/assert"
)

func user(id uint, role models.RoleName) models.User {
	return models.User{ID: id, Role: models.Role{Name: role}}
}

func TestCanModify_Matrix(t *testing.T) {
	const ownerID = 1

	cases := []struct {
		isOwner bool
		isAdmin bool
		want    bool
	}{
		{isOwner: true, isAdmin: true, want: true},
		{isOwner: true, isAdmin: false, want: true},
		{isOwner: false, isAdmin: true, want: true},
		{isOwner: false, isAdmin: false, want: false},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("owner=%v/admin=%v", tc.isOwner, tc.isAdmin), func(t *testing.T) {
			id := uint(2)
			if tc.isOwner {
				id = ownerID
			}
			role := models.RoleCitizen
			if tc.isAdmin {
				role = models.RoleAdmin
			}
			assert.Equal(t, tc.want, CanModify(user(id, role), ownerID))
		})
	}
}

func TestCanModify_UnloadedRoleIsNotAdmin(t *testing.T) {
	assert.False(t, CanModify(models.User{ID: 5, RoleID: 1}, 6))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(user(1, models.RoleAdmin)))
	assert.False(t, IsAdmin(user(1, models.RoleCitizen)))
	assert.False(t, IsAdmin(models.User{}))
}
