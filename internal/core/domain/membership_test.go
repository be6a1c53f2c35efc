package domain_test

import (
	"testing"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMembershipIndex_AddRemoveMove(t *testing.T) {
	idx := domain.NewMembershipIndex()
	idx.Ensure("d1")
	idx.Add("d1", "u2")
	idx.Add("d1", "u1")
	idx.Add("d2", "u3")

	assert.Equal(t, []string{"u1", "u2"}, idx.Members("d1"))
	assert.Equal(t, 2, idx.Size("d1"))

	idx.Move("u1", "d1", "d2")
	assert.False(t, idx.Contains("d1", "u1"))
	assert.True(t, idx.Contains("d2", "u1"))

	idx.Remove("d1", "u2")
	assert.True(t, idx.HasParent("d1"), "empty entry survives removal")
	assert.Equal(t, 0, idx.Size("d1"))

	idx.Drop("d1")
	assert.False(t, idx.HasParent("d1"))
	assert.Equal(t, []string{"d2"}, idx.Parents())
}

func TestMembershipIndex_CloneCopiesOnWrite(t *testing.T) {
	original := domain.NewMembershipIndex()
	original.Add("d1", "u1")

	clone := original.Clone()
	clone.Add("d1", "u2")
	clone.Remove("d1", "u1")
	clone.Add("d2", "u9")

	assert.Equal(t, []string{"u1"}, original.Members("d1"), "source set must not see writes through the clone")
	assert.False(t, original.HasParent("d2"))
	assert.Equal(t, []string{"u2"}, clone.Members("d1"))
}

func TestMembershipIndex_MergeAndEqual(t *testing.T) {
	idx := domain.NewMembershipIndex()
	idx.Add("src", "u1")
	idx.Add("src", "u2")
	idx.Add("dst", "u3")

	idx.Merge("src", "dst")
	assert.Equal(t, []string{"u1", "u2", "u3"}, idx.Members("dst"))

	other := idx.DeepClone()
	assert.True(t, idx.Equal(other))

	other.Remove("dst", "u3")
	assert.False(t, idx.Equal(other))
}
