package stockcard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/location"
)

// stubLocationRepo answers DescendantIDs and GetByID from fixed data;
// other repository methods are not used by these tests.
type stubLocationRepo struct {
	location.Repository
	descendants map[id.ID][]id.ID
	byID        map[id.ID]*location.Location
}

func (r *stubLocationRepo) DescendantIDs(ctx context.Context, root id.ID) ([]id.ID, error) {
	ids, ok := r.descendants[root]
	if !ok {
		return nil, apperror.NewNotFound("location", root)
	}
	return ids, nil
}

func (r *stubLocationRepo) GetByID(ctx context.Context, locID id.ID) (*location.Location, error) {
	loc, ok := r.byID[locID]
	if !ok {
		return nil, apperror.NewNotFound("location", locID)
	}
	return loc, nil
}

func TestScopeResolverResolve(t *testing.T) {
	root := id.New()
	childA := id.New()
	childB := id.New()
	grandchild := id.New()

	repo := &stubLocationRepo{descendants: map[id.ID][]id.ID{
		root:   {root, childA, childB, grandchild},
		childA: {childA, grandchild},
		childB: {childB},
	}}
	resolver := NewScopeResolver(repo)

	t.Run("root with subtree", func(t *testing.T) {
		scope, err := resolver.Resolve(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, 4, scope.Len())
		assert.True(t, scope.Contains(root))
		assert.True(t, scope.Contains(grandchild))
	})

	t.Run("leaf root yields singleton", func(t *testing.T) {
		scope, err := resolver.Resolve(context.Background(), childB)
		require.NoError(t, err)
		assert.Equal(t, 1, scope.Len())
		assert.True(t, scope.Contains(childB))
	})

	t.Run("missing root is an error not an empty set", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), id.New())
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		first, err := resolver.Resolve(context.Background(), root)
		require.NoError(t, err)
		second, err := resolver.Resolve(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, first.IDs(), second.IDs())
	})
}

func TestLocationSetIDsDeterministic(t *testing.T) {
	ids := []id.ID{id.New(), id.New(), id.New(), id.New()}

	a := NewLocationSet(ids...)
	b := NewLocationSet(ids[3], ids[1], ids[0], ids[2], ids[0])

	assert.Equal(t, a.IDs(), b.IDs())
	assert.Equal(t, 4, b.Len())
}
