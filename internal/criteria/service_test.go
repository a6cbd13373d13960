// AngelaMos | 2026
// service_test.go

package criteria

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type memoryRepo struct {
	criteria map[string]*RatingCriterion
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{criteria: make(map[string]*RatingCriterion)}
}

func (m *memoryRepo) List(
	ctx context.Context,
	interactionType string,
) ([]RatingCriterion, error) {
	var result []RatingCriterion
	for _, c := range m.criteria {
		if c.DeletedAt != nil {
			continue
		}
		if interactionType != "" && c.InteractionType != interactionType {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *memoryRepo) GetByID(
	ctx context.Context,
	id string,
) (*RatingCriterion, error) {
	c, ok := m.criteria[id]
	if !ok {
		return nil, fmt.Errorf("get criterion: %w", core.ErrNotFound)
	}
	return c, nil
}

func (m *memoryRepo) ListActiveByType(
	ctx context.Context,
	interactionType string,
) ([]RatingCriterion, error) {
	return m.List(ctx, interactionType)
}

func (m *memoryRepo) Upsert(
	ctx context.Context,
	criterion *RatingCriterion,
) error {
	m.criteria[criterion.ID] = criterion
	return nil
}

func (m *memoryRepo) SoftDelete(ctx context.Context, id string) error {
	c, ok := m.criteria[id]
	if !ok || c.DeletedAt != nil {
		return fmt.Errorf("delete criterion: %w", core.ErrNotFound)
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func TestUpsertCriterion(t *testing.T) {
	t.Run("assigns id when absent", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		criterion, err := svc.Upsert(context.Background(), UpsertCriterionRequest{
			InteractionType: TypeDate,
			Name:            "Punctuality",
			Weight:          1.5,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, criterion.ID)
	})

	t.Run("rejects unknown interaction type", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.Upsert(context.Background(), UpsertCriterionRequest{
			InteractionType: "smoke_signal",
			Name:            "Clarity",
			Weight:          1,
		})
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("rejects negative and non-finite weights", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		for _, weight := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := svc.Upsert(context.Background(), UpsertCriterionRequest{
				InteractionType: TypeDate,
				Name:            "Bad weight",
				Weight:          weight,
			})
			require.ErrorIs(t, err, core.ErrInvalidInput)
		}
	})

	t.Run("zero weight is allowed", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.Upsert(context.Background(), UpsertCriterionRequest{
			InteractionType: TypeDate,
			Name:            "Informational only",
			Weight:          0,
		})
		require.NoError(t, err)
	})
}

func TestDeleteCriterionExcludesFromListings(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	criterion, err := svc.Upsert(context.Background(), UpsertCriterionRequest{
		InteractionType: TypeDate,
		Name:            "Punctuality",
		Weight:          1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), criterion.ID))

	list, err := svc.List(context.Background(), TypeDate)
	require.NoError(t, err)
	assert.Empty(t, list)

	active, err := svc.ActiveByType(context.Background(), TypeDate)
	require.NoError(t, err)
	assert.Empty(t, active)

	// The row itself survives so historical ratings keep their weights.
	kept, err := repo.GetByID(context.Background(), criterion.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept.DeletedAt)
}

func TestListRejectsUnknownType(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.List(context.Background(), "smoke_signal")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}
