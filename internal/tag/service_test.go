// AngelaMos | 2026
// service_test.go

package tag

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

const (
	testUser = "user-1"
	testPOI  = "poi-1"
	tagGhost = "tag-ghost"
	tagKind  = "tag-kind"
)

type memoryRepo struct {
	tags        map[string]*Tag
	assignments map[string]*Assignment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		tags: map[string]*Tag{
			tagGhost: {ID: tagGhost, Name: "Ghosted", Category: CategoryNegative},
			tagKind:  {ID: tagKind, Name: "Respectful", Category: CategoryPositive},
		},
		assignments: make(map[string]*Assignment),
	}
}

func key(userID, poiID string) string {
	return userID + "|" + poiID
}

func (m *memoryRepo) ListTags(ctx context.Context) ([]Tag, error) {
	result := make([]Tag, 0, len(m.tags))
	for _, t := range m.tags {
		result = append(result, *t)
	}
	return result, nil
}

func (m *memoryRepo) GetTagByID(ctx context.Context, id string) (*Tag, error) {
	t, ok := m.tags[id]
	if !ok {
		return nil, fmt.Errorf("get tag: %w", core.ErrNotFound)
	}
	return t, nil
}

func (m *memoryRepo) UpsertAssignment(
	ctx context.Context,
	assignment *Assignment,
) error {
	k := key(assignment.UserID, assignment.POIID)
	if existing, ok := m.assignments[k]; ok {
		existing.TagID = assignment.TagID
		existing.UpdatedAt = time.Now()
		*assignment = *existing
		return nil
	}
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt
	m.assignments[k] = assignment
	return nil
}

func (m *memoryRepo) DeleteAssignment(
	ctx context.Context,
	userID, poiID string,
) error {
	delete(m.assignments, key(userID, poiID))
	return nil
}

func (m *memoryRepo) GetAssignment(
	ctx context.Context,
	userID, poiID string,
) (*Assignment, error) {
	a, ok := m.assignments[key(userID, poiID)]
	if !ok {
		return nil, fmt.Errorf("get tag assignment: %w", core.ErrNotFound)
	}
	return a, nil
}

func (m *memoryRepo) CountByPOI(
	ctx context.Context,
	poiID string,
) ([]POITagCount, error) {
	counts := make(map[string]int)
	for _, a := range m.assignments {
		if a.POIID == poiID {
			counts[a.TagID]++
		}
	}
	result := make([]POITagCount, 0, len(counts))
	for tagID, count := range counts {
		result = append(result, POITagCount{TagID: tagID, Count: count})
	}
	return result, nil
}

type poiChecker struct{}

func (poiChecker) Exists(ctx context.Context, id string) (bool, error) {
	return id == testPOI, nil
}

func TestAssignTag(t *testing.T) {
	t.Run("creates then replaces in place", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, poiChecker{})

		first, err := svc.Assign(context.Background(), testUser, testPOI, tagGhost)
		require.NoError(t, err)
		assert.Equal(t, tagGhost, first.TagID)

		second, err := svc.Assign(context.Background(), testUser, testPOI, tagKind)
		require.NoError(t, err)
		assert.Equal(t, tagKind, second.TagID)

		// one surviving row, carrying the latest tag
		assert.Len(t, repo.assignments, 1)
		current, err := svc.Get(context.Background(), testUser, testPOI)
		require.NoError(t, err)
		assert.Equal(t, tagKind, current.TagID)
	})

	t.Run("unknown poi is not found", func(t *testing.T) {
		svc := NewService(newMemoryRepo(), poiChecker{})

		_, err := svc.Assign(context.Background(), testUser, "missing", tagGhost)
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("unknown tag is not found", func(t *testing.T) {
		svc := NewService(newMemoryRepo(), poiChecker{})

		_, err := svc.Assign(context.Background(), testUser, testPOI, "missing")
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestClearTag(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, poiChecker{})

	_, err := svc.Assign(context.Background(), testUser, testPOI, tagGhost)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), testUser, testPOI))

	_, err = svc.Get(context.Background(), testUser, testPOI)
	require.ErrorIs(t, err, core.ErrNotFound)

	// clearing an absent assignment stays a no-op
	require.NoError(t, svc.Clear(context.Background(), testUser, testPOI))
}
