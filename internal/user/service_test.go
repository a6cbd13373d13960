// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type memoryRepo struct {
	users    map[string]*User
	profiles map[string]*Profile
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		users:    make(map[string]*User),
		profiles: make(map[string]*Profile),
	}
}

func (m *memoryRepo) Create(
	ctx context.Context,
	user *User,
	profile *Profile,
) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	m.users[user.ID] = user
	m.profiles[user.ID] = profile
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (m *memoryRepo) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	for _, u := range m.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (m *memoryRepo) Update(ctx context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryRepo) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memoryRepo) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	u.TokenVersion++
	return nil
}

func (m *memoryRepo) SoftDelete(ctx context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (m *memoryRepo) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	var result []User
	for _, u := range m.users {
		if u.DeletedAt == nil {
			result = append(result, *u)
		}
	}
	return result, len(result), nil
}

func (m *memoryRepo) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memoryRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	u, ok := m.users[id]
	return ok && u.DeletedAt == nil, nil
}

func (m *memoryRepo) GetProfile(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	return p, nil
}

func (m *memoryRepo) GetProfileBySlug(
	ctx context.Context,
	slug string,
) (*Profile, error) {
	for _, p := range m.profiles {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
}

func (m *memoryRepo) UpdateProfile(
	ctx context.Context,
	profile *Profile,
) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func registerUser(t *testing.T, svc *Service, email, name string) string {
	t.Helper()
	info, err := svc.Create(context.Background(), email, "hash", name)
	require.NoError(t, err)
	return info.ID
}

func TestCreateUserAlsoCreatesProfile(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id := registerUser(t, svc, "Jane@Example.com", "Jane Doe")

	user, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)

	profile, err := repo.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, profile.IsVisible)
	assert.Contains(t, profile.Slug, "jane-doe-")
}

func TestGetProfileBySlugVisibility(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	ownerID := registerUser(t, svc, "owner@example.com", "Owner")
	viewerID := registerUser(t, svc, "viewer@example.com", "Viewer")

	profile, err := repo.GetProfile(context.Background(), ownerID)
	require.NoError(t, err)

	hidden := false
	_, err = svc.UpdateProfile(context.Background(), ownerID, ownerID,
		UpdateProfileRequest{IsVisible: &hidden})
	require.NoError(t, err)

	_, err = svc.GetProfileBySlug(context.Background(), profile.Slug, viewerID)
	require.ErrorIs(t, err, core.ErrNotFound)

	got, err := svc.GetProfileBySlug(context.Background(), profile.Slug, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, got.UserID)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	ownerID := registerUser(t, svc, "owner@example.com", "Owner")
	strangerID := registerUser(t, svc, "stranger@example.com", "Stranger")

	bio := "hello"
	_, err := svc.UpdateProfile(context.Background(), strangerID, ownerID,
		UpdateProfileRequest{Bio: &bio})
	require.ErrorIs(t, err, core.ErrForbidden)

	got, err := svc.UpdateProfile(context.Background(), ownerID, ownerID,
		UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Bio)
}

func TestUpdateUserRole(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id := registerUser(t, svc, "admin@example.com", "Admin To Be")

	_, err := svc.UpdateUserRole(context.Background(), id, "superuser")
	require.ErrorIs(t, err, core.ErrInvalidInput)

	user, err := svc.UpdateUserRole(context.Background(), id, RoleAdmin)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}

func TestSoftDeletedUserStopsExisting(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id := registerUser(t, svc, "gone@example.com", "Gone Soon")

	exists, err := svc.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.DeleteUser(context.Background(), id))

	exists, err = svc.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, exists)
}
