package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hjkwon-dev/miniblog/models"
)

func TestCanModify(t *testing.T) {
	owner := Actor{ID: 1, Username: "alice", Role: models.RoleUser}
	stranger := Actor{ID: 2, Username: "bob", Role: models.RoleUser}
	admin := Actor{ID: 3, Username: "root", Role: models.RoleAdmin}

	tests := []struct {
		name    string
		actor   Actor
		ownerID uint
		want    bool
	}{
		{"owner may modify own entity", owner, 1, true},
		{"stranger may not modify", stranger, 1, false},
		{"admin may modify anything", admin, 1, true},
		{"admin may modify own entity", admin, 3, true},
		{"zero actor may not modify", Actor{}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.actor, tt.ownerID))
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, Actor{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, Actor{Role: models.RoleUser}.IsAdmin())
	// role strings are case-sensitive; only the canonical constant counts
	assert.False(t, Actor{Role: "admin"}.IsAdmin())
	assert.False(t, Actor{}.IsAdmin())
}
