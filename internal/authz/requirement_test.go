package authz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuilder_Build(t *testing.T) {
	registry, err := NewRegistryBuilder().
		Policy(NewSelfPolicy()).
		Request(getProfileRequest{},
			AllPermissions(PermissionUsersGet),
			Policies(PolicySelfOrAdmin),
		).
		Build()
	require.NoError(t, err)

	requirement, ok := registry.RequirementFor("users.get")
	require.True(t, ok)
	assert.Equal(t, []Permission{PermissionUsersGet}, requirement.Permissions)
	assert.Equal(t, []PolicyName{PolicySelfOrAdmin}, requirement.Policies)

	_, ok = registry.PolicyFor(PolicySelfOrAdmin)
	assert.True(t, ok)
}

func TestRegistryBuilder_UnregisteredPolicy(t *testing.T) {
	_, err := NewRegistryBuilder().
		Request(getProfileRequest{}, Policies(PolicySelfOrAdmin)).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unregistered policy")
}

func TestRegistryBuilder_CapabilityMismatch(t *testing.T) {
	// pingRequest exposes no target user, so tagging it with SelfOrAdmin is a
	// wiring bug caught at build time.
	_, err := NewRegistryBuilder().
		Policy(NewSelfPolicy()).
		Request(pingRequest{}, Policies(PolicySelfOrAdmin)).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capability")
}

func TestRegistryBuilder_DuplicateRequest(t *testing.T) {
	_, err := NewRegistryBuilder().
		Request(pingRequest{}).
		Request(pingRequest{}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRegistryBuilder_DuplicatePolicy(t *testing.T) {
	_, err := NewRegistryBuilder().
		Policy(NewSelfPolicy()).
		Policy(NewSelfPolicy()).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRequirement_Empty(t *testing.T) {
	assert.True(t, Requirement{}.Empty())
	assert.False(t, Requirement{Roles: []Role{RoleAdmin}}.Empty())
	assert.False(t, Requirement{Permissions: []Permission{PermissionUsersGet}}.Empty())
	assert.False(t, Requirement{Policies: []PolicyName{PolicySelfOrAdmin}}.Empty())
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	registry, err := NewRegistryBuilder().
		Policy(NewSelfPolicy()).
		Request(getProfileRequest{}, Policies(PolicySelfOrAdmin)).
		Build()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				_, _ = registry.RequirementFor("users.get")
				_, _ = registry.PolicyFor(PolicySelfOrAdmin)
			}
		}()
	}

	wg.Wait()
}
