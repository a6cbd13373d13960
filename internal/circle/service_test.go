// AngelaMos | 2026
// service_test.go

package circle

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
	creatorID = "00000000-0000-0000-0000-0000000000c1"
	memberID  = "00000000-0000-0000-0000-0000000000a1"
	otherID   = "00000000-0000-0000-0000-0000000000b1"
)

type memoryRepo struct {
	circles     map[string]*Circle
	memberships []*Membership
	invitations map[string]*Invitation
	seq         int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		circles:     make(map[string]*Circle),
		invitations: make(map[string]*Invitation),
	}
}

func (m *memoryRepo) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memoryRepo) Create(
	ctx context.Context,
	circle *Circle,
) (*Membership, error) {
	circle.ID = m.nextID("circle")
	circle.CreatedAt = time.Now()
	m.circles[circle.ID] = circle

	membership := &Membership{
		ID:        m.nextID("membership"),
		CircleID:  circle.ID,
		UserID:    circle.CreatedBy,
		Status:    StatusApproved,
		Role:      RoleModerator,
		CreatedAt: time.Now(),
	}
	m.memberships = append(m.memberships, membership)
	return membership, nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id string) (*Circle, error) {
	c, ok := m.circles[id]
	if !ok {
		return nil, fmt.Errorf("get circle: %w", core.ErrNotFound)
	}
	return c, nil
}

func (m *memoryRepo) List(
	ctx context.Context,
	params ListCirclesParams,
) ([]Circle, int, error) {
	var result []Circle
	for _, c := range m.circles {
		result = append(result, *c)
	}
	return result, len(result), nil
}

func (m *memoryRepo) current(circleID, userID string) *Membership {
	var latest *Membership
	for _, mem := range m.memberships {
		if mem.CircleID == circleID && mem.UserID == userID {
			latest = mem
		}
	}
	return latest
}

func (m *memoryRepo) GetCurrentMembership(
	ctx context.Context,
	circleID, userID string,
) (*Membership, error) {
	if mem := m.current(circleID, userID); mem != nil {
		copied := *mem
		return &copied, nil
	}
	return nil, fmt.Errorf("get membership: %w", core.ErrNotFound)
}

func (m *memoryRepo) CreateMembership(
	ctx context.Context,
	membership *Membership,
) error {
	if cur := m.current(membership.CircleID, membership.UserID); cur != nil &&
		cur.Status != StatusRemoved {
		return fmt.Errorf("create membership: %w", core.ErrConflict)
	}
	membership.ID = m.nextID("membership")
	membership.CreatedAt = time.Now()
	m.memberships = append(m.memberships, membership)
	return nil
}

func (m *memoryRepo) TransitionMembership(
	ctx context.Context,
	circleID, targetUserID, newStatus, newRole string,
	validate func(current *Membership) error,
) (*Membership, error) {
	current := m.current(circleID, targetUserID)
	if current == nil {
		return nil, fmt.Errorf("get membership: %w", core.ErrNotFound)
	}

	if err := validate(current); err != nil {
		return nil, err
	}

	current.Status = newStatus
	if newRole != "" {
		current.Role = newRole
	}
	current.UpdatedAt = time.Now()

	copied := *current
	return &copied, nil
}

func (m *memoryRepo) ListMembers(
	ctx context.Context,
	circleID string,
) ([]Membership, error) {
	var result []Membership
	for _, mem := range m.memberships {
		if mem.CircleID == circleID && mem.Status != StatusRemoved {
			result = append(result, *mem)
		}
	}
	return result, nil
}

func (m *memoryRepo) CreateInvitation(
	ctx context.Context,
	invitation *Invitation,
) error {
	invitation.ID = m.nextID("invitation")
	invitation.CreatedAt = time.Now()
	m.invitations[invitation.Token] = invitation
	return nil
}

func (m *memoryRepo) GetInvitationByToken(
	ctx context.Context,
	token string,
) (*Invitation, error) {
	inv, ok := m.invitations[token]
	if !ok {
		return nil, fmt.Errorf("get invitation: %w", core.ErrNotFound)
	}
	return inv, nil
}

func (m *memoryRepo) AcceptInvitation(ctx context.Context, id string) error {
	for _, inv := range m.invitations {
		if inv.ID == id && inv.AcceptedAt == nil {
			now := time.Now()
			inv.AcceptedAt = &now
		}
	}
	return nil
}

// flakyMembershipRepo fails the first CreateMembership calls, simulating a
// transient storage error during a join.
type flakyMembershipRepo struct {
	*memoryRepo
	failures int
}

func (f *flakyMembershipRepo) CreateMembership(
	ctx context.Context,
	membership *Membership,
) error {
	if f.failures > 0 {
		f.failures--
		return fmt.Errorf("create membership: connection reset")
	}
	return f.memoryRepo.CreateMembership(ctx, membership)
}

type recordingNotifier struct {
	invites []string
}

func (n *recordingNotifier) SendCircleInvite(
	ctx context.Context,
	email, circleName, token string,
) {
	n.invites = append(n.invites, email)
}

func newTestService(repo Repository) (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewService(repo, notifier, 7*24*time.Hour), notifier
}

func createCircle(t *testing.T, svc *Service, circleType string) *Circle {
	t.Helper()
	circle, err := svc.Create(context.Background(), creatorID, &CreateCircleRequest{
		Name: "Brooklyn Daters",
		City: "Brooklyn",
		Type: circleType,
	})
	require.NoError(t, err)
	return circle
}

func TestCreateCircle(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo)

	circle := createCircle(t, svc, TypeRequest)

	membership, err := repo.GetCurrentMembership(context.Background(), circle.ID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, membership.Status)
	assert.Equal(t, RoleModerator, membership.Role)
}

func TestRequestJoin(t *testing.T) {
	t.Run("public circle approves immediately", func(t *testing.T) {
		svc, _ := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypePublic)

		membership, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, membership.Status)
		assert.Equal(t, RoleMember, membership.Role)
	})

	t.Run("request circle creates pending", func(t *testing.T) {
		svc, _ := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypeRequest)

		membership, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.NoError(t, err)
		assert.Equal(t, StatusPending, membership.Status)
	})

	t.Run("invite circle requires a token", func(t *testing.T) {
		svc, _ := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypeInvite)

		_, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("invite circle accepts a valid invitation", func(t *testing.T) {
		repo := newMemoryRepo()
		svc, _ := newTestService(repo)
		circle := createCircle(t, svc, TypeInvite)

		invitation, err := svc.InviteByEmail(
			context.Background(), creatorID, circle.ID, "bob@example.com")
		require.NoError(t, err)

		membership, err := svc.RequestJoin(
			context.Background(), memberID, circle.ID, invitation.Token)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, membership.Status)
	})

	t.Run("failed join leaves the invitation usable", func(t *testing.T) {
		inner := newMemoryRepo()
		repo := &flakyMembershipRepo{memoryRepo: inner, failures: 1}
		svc, _ := newTestService(repo)
		circle := createCircle(t, svc, TypeInvite)

		invitation, err := svc.InviteByEmail(
			context.Background(), creatorID, circle.ID, "bob@example.com")
		require.NoError(t, err)

		_, err = svc.RequestJoin(
			context.Background(), memberID, circle.ID, invitation.Token)
		require.Error(t, err)

		stored, err := inner.GetInvitationByToken(
			context.Background(), invitation.Token)
		require.NoError(t, err)
		assert.Nil(t, stored.AcceptedAt)
		assert.True(t, stored.Usable(time.Now()))

		membership, err := svc.RequestJoin(
			context.Background(), memberID, circle.ID, invitation.Token)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, membership.Status)

		stored, err = inner.GetInvitationByToken(
			context.Background(), invitation.Token)
		require.NoError(t, err)
		assert.NotNil(t, stored.AcceptedAt)
	})

	t.Run("expired invitation rejected", func(t *testing.T) {
		repo := newMemoryRepo()
		svc, _ := newTestService(repo)
		circle := createCircle(t, svc, TypeInvite)

		invitation := &Invitation{
			CircleID:  circle.ID,
			InviterID: creatorID,
			Email:     "bob@example.com",
			Token:     "expired-token",
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		require.NoError(t, repo.CreateInvitation(context.Background(), invitation))

		_, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "expired-token")
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("already pending conflicts", func(t *testing.T) {
		svc, _ := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypeRequest)

		_, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.NoError(t, err)

		_, err = svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.ErrorIs(t, err, core.ErrConflict)
	})

	t.Run("removed member rejoins with a fresh pending epoch", func(t *testing.T) {
		repo := newMemoryRepo()
		svc, _ := newTestService(repo)
		circle := createCircle(t, svc, TypeRequest)

		first, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.NoError(t, err)

		_, err = svc.ManageMember(context.Background(), creatorID, circle.ID,
			&ManageMemberRequest{TargetUserID: memberID, Status: StatusRemoved})
		require.NoError(t, err)

		second, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.NoError(t, err)
		assert.Equal(t, StatusPending, second.Status)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("unknown circle is not found", func(t *testing.T) {
		svc, _ := newTestService(newMemoryRepo())

		_, err := svc.RequestJoin(context.Background(), memberID, "missing", "")
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestManageMember(t *testing.T) {
	setup := func(t *testing.T) (*Service, *Circle) {
		t.Helper()
		svc, _ := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypeRequest)
		_, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.NoError(t, err)
		return svc, circle
	}

	t.Run("creator approves a pending request", func(t *testing.T) {
		svc, circle := setup(t)

		membership, err := svc.ManageMember(context.Background(), creatorID, circle.ID,
			&ManageMemberRequest{TargetUserID: memberID, Status: StatusApproved})
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, membership.Status)
	})

	t.Run("non moderator cannot approve", func(t *testing.T) {
		svc, circle := setup(t)

		_, err := svc.RequestJoin(context.Background(), otherID, circle.ID, "")
		require.NoError(t, err)

		_, err = svc.ManageMember(context.Background(), otherID, circle.ID,
			&ManageMemberRequest{TargetUserID: memberID, Status: StatusApproved})
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("plain approved member cannot manage", func(t *testing.T) {
		svc, circle := setup(t)

		_, err := svc.ManageMember(context.Background(), creatorID, circle.ID,
			&ManageMemberRequest{TargetUserID: memberID, Status: StatusApproved})
		require.NoError(t, err)

		_, err = svc.RequestJoin(context.Background(), otherID, circle.ID, "")
		require.NoError(t, err)

		_, err = svc.ManageMember(context.Background(), memberID, circle.ID,
			&ManageMemberRequest{TargetUserID: otherID, Status: StatusApproved})
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("self promotion rejected", func(t *testing.T) {
		svc, circle := setup(t)

		_, err := svc.ManageMember(context.Background(), creatorID, circle.ID,
			&ManageMemberRequest{
				TargetUserID: memberID,
				Status:       StatusApproved,
				Role:         RoleModerator,
			})
		require.NoError(t, err)

		_, err = svc.ManageMember(context.Background(), memberID, circle.ID,
			&ManageMemberRequest{
				TargetUserID: memberID,
				Status:       StatusApproved,
				Role:         RoleModerator,
			})
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("removed epoch is terminal", func(t *testing.T) {
		svc, circle := setup(t)

		_, err := svc.ManageMember(context.Background(), creatorID, circle.ID,
			&ManageMemberRequest{TargetUserID: memberID, Status: StatusRemoved})
		require.NoError(t, err)

		_, err = svc.ManageMember(context.Background(), creatorID, circle.ID,
			&ManageMemberRequest{TargetUserID: memberID, Status: StatusApproved})
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("unknown target membership is not found", func(t *testing.T) {
		svc, circle := setup(t)

		_, err := svc.ManageMember(context.Background(), creatorID, circle.ID,
			&ManageMemberRequest{TargetUserID: otherID, Status: StatusApproved})
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestInviteByEmail(t *testing.T) {
	t.Run("approved member invite dispatches notification", func(t *testing.T) {
		svc, notifier := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypeInvite)

		invitation, err := svc.InviteByEmail(
			context.Background(), creatorID, circle.ID, "friend@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, invitation.Token)
		assert.True(t, invitation.ExpiresAt.After(time.Now()))
		assert.Equal(t, []string{"friend@example.com"}, notifier.invites)
	})

	t.Run("non member cannot invite", func(t *testing.T) {
		svc, notifier := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypeInvite)

		_, err := svc.InviteByEmail(
			context.Background(), otherID, circle.ID, "friend@example.com")
		require.ErrorIs(t, err, core.ErrForbidden)
		assert.Empty(t, notifier.invites)
	})

	t.Run("pending member cannot invite", func(t *testing.T) {
		svc, _ := newTestService(newMemoryRepo())
		circle := createCircle(t, svc, TypeRequest)

		_, err := svc.RequestJoin(context.Background(), memberID, circle.ID, "")
		require.NoError(t, err)

		_, err = svc.InviteByEmail(
			context.Background(), memberID, circle.ID, "friend@example.com")
		require.ErrorIs(t, err, core.ErrForbidden)
	})
}

func TestListMembersVisibility(t *testing.T) {
	svc, _ := newTestService(newMemoryRepo())
	circle := createCircle(t, svc, TypeInvite)

	_, err := svc.ListMembers(context.Background(), otherID, circle.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	members, err := svc.ListMembers(context.Background(), creatorID, circle.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
