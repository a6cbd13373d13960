// AngelaMos | 2026
// service_test.go

package interaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/veritas-backend/internal/core"
	"github.com/carterperez-dev/veritas-backend/internal/criteria"
)

type fakeRepo struct {
	created     []*Interaction
	createErr   error
	listResult  []Interaction
	listTotal   int
}

func (f *fakeRepo) CreateWithRatings(
	ctx context.Context,
	interaction *Interaction,
) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, interaction)
	return nil
}

func (f *fakeRepo) ListByPOI(
	ctx context.Context,
	poiID string,
	params ListParams,
) ([]Interaction, int, error) {
	return f.listResult, f.listTotal, nil
}

type fakeChecker struct {
	ids map[string]bool
}

func (f *fakeChecker) Exists(ctx context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

type fakeCriteria struct {
	byType map[string]map[string]criteria.RatingCriterion
}

func (f *fakeCriteria) ActiveByType(
	ctx context.Context,
	interactionType string,
) (map[string]criteria.RatingCriterion, error) {
	set, ok := f.byType[interactionType]
	if !ok {
		return map[string]criteria.RatingCriterion{}, nil
	}
	return set, nil
}

type fakeInvalidator struct {
	invalidated []string
	err         error
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, poiID string) error {
	f.invalidated = append(f.invalidated, poiID)
	return f.err
}

const (
	testReporter  = "6b4a93ce-8d61-4f3c-9a7b-111111111111"
	testPOI       = "6b4a93ce-8d61-4f3c-9a7b-222222222222"
	testCriterion = "6b4a93ce-8d61-4f3c-9a7b-333333333333"
)

func newTestService(repo *fakeRepo, inv *fakeInvalidator) *Service {
	checker := &fakeChecker{ids: map[string]bool{
		testReporter: true,
		testPOI:      true,
	}}
	crit := &fakeCriteria{byType: map[string]map[string]criteria.RatingCriterion{
		criteria.TypeDate: {
			testCriterion: {ID: testCriterion, InteractionType: criteria.TypeDate},
		},
	}}
	return NewService(repo, checker, checker, crit, inv)
}

func validRequest() LogInteractionRequest {
	return LogInteractionRequest{
		POIID:      testPOI,
		Type:       criteria.TypeDate,
		Platform:   "tinder",
		OccurredAt: time.Now().Add(-24 * time.Hour),
		Outcome:    OutcomePositive,
		Ratings: []RatingInput{
			{CriteriaID: testCriterion, Score: 4},
		},
	}
}

func TestLogInteraction(t *testing.T) {
	t.Run("persists interaction with ratings and invalidates cache", func(t *testing.T) {
		repo := &fakeRepo{}
		inv := &fakeInvalidator{}
		svc := newTestService(repo, inv)

		got, err := svc.Log(context.Background(), testReporter, validRequest())
		require.NoError(t, err)

		require.Len(t, repo.created, 1)
		assert.Equal(t, testReporter, got.ReporterID)
		assert.Equal(t, testPOI, got.POIID)
		require.Len(t, got.Ratings, 1)
		assert.Equal(t, testCriterion, got.Ratings[0].CriteriaID)
		assert.Equal(t, 4, got.Ratings[0].Score)

		assert.Equal(t, []string{testPOI}, inv.invalidated)
	})

	t.Run("unknown reporter is not found", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		_, err := svc.Log(context.Background(), "unknown-reporter", validRequest())
		require.ErrorIs(t, err, core.ErrNotFound)
		assert.Empty(t, repo.created)
	})

	t.Run("unknown poi is not found", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		req := validRequest()
		req.POIID = "6b4a93ce-8d61-4f3c-9a7b-999999999999"

		_, err := svc.Log(context.Background(), testReporter, req)
		require.ErrorIs(t, err, core.ErrNotFound)
		assert.Empty(t, repo.created)
	})

	t.Run("invalid interaction type rejected", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		req := validRequest()
		req.Type = "carrier_pigeon"

		_, err := svc.Log(context.Background(), testReporter, req)
		require.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Empty(t, repo.created)
	})

	t.Run("invalid outcome rejected", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		req := validRequest()
		req.Outcome = "mixed"

		_, err := svc.Log(context.Background(), testReporter, req)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("foreign criterion rejected and nothing written", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		req := validRequest()
		req.Ratings = []RatingInput{
			{CriteriaID: "6b4a93ce-8d61-4f3c-9a7b-444444444444", Score: 3},
		}

		_, err := svc.Log(context.Background(), testReporter, req)
		require.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Empty(t, repo.created)
	})

	t.Run("out of range score rejected", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		req := validRequest()
		req.Ratings = []RatingInput{{CriteriaID: testCriterion, Score: 6}}

		_, err := svc.Log(context.Background(), testReporter, req)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("duplicate criterion rejected", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		req := validRequest()
		req.Ratings = []RatingInput{
			{CriteriaID: testCriterion, Score: 4},
			{CriteriaID: testCriterion, Score: 2},
		}

		_, err := svc.Log(context.Background(), testReporter, req)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("zero ratings is valid", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeInvalidator{})

		req := validRequest()
		req.Ratings = nil

		got, err := svc.Log(context.Background(), testReporter, req)
		require.NoError(t, err)
		assert.Empty(t, got.Ratings)
	})

	t.Run("storage failure surfaces and skips invalidation", func(t *testing.T) {
		repo := &fakeRepo{createErr: errors.New("connection reset")}
		inv := &fakeInvalidator{}
		svc := newTestService(repo, inv)

		_, err := svc.Log(context.Background(), testReporter, validRequest())
		require.Error(t, err)
		assert.Empty(t, inv.invalidated)
	})

	t.Run("invalidation failure does not fail the log", func(t *testing.T) {
		repo := &fakeRepo{}
		inv := &fakeInvalidator{err: errors.New("redis down")}
		svc := newTestService(repo, inv)

		_, err := svc.Log(context.Background(), testReporter, validRequest())
		require.NoError(t, err)
		require.Len(t, repo.created, 1)
	})
}

func TestListByPOIUnknownPOI(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeInvalidator{})

	_, _, err := svc.ListByPOI(
		context.Background(),
		"6b4a93ce-8d61-4f3c-9a7b-999999999999",
		ListParams{},
	)
	require.ErrorIs(t, err, core.ErrNotFound)
}
