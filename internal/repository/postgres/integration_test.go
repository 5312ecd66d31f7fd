//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/avollmer/userd/internal/model"
	repo "github.com/avollmer/userd/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "userd_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/userd_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(username, email string) model.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		PasswordDigest: "$2a$10$placeholderdigestvalue",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestUserRepository_Roundtrip(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("roundtrip_user", "roundtrip@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	assert.True(t, saved.IsActive)
	assert.False(t, saved.IsVerified)
	assert.Nil(t, saved.LastLoginAt)

	byUsername, err := ur.GetByIdentifier(ctx, "roundtrip_user")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byUsername.ID)

	// Email lookup is case-insensitive; username lookup is not.
	byEmail, err := ur.GetByIdentifier(ctx, "ROUNDTRIP@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = ur.GetByIdentifier(ctx, "ROUNDTRIP_USER")
	require.ErrorIs(t, err, model.ErrNotFound)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byID.Username)
}

func TestUserRepository_DuplicateEmail_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	_, err = ur.Create(ctx, newUser("dup_email_one", "dup@example.com"))
	require.NoError(t, err)

	// Stored emails are already lowercased by validation, so the second
	// normalized insert collides on the unique constraint.
	_, err = ur.Create(ctx, newUser("dup_email_two", "dup@example.com"))
	var conflict model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestUserRepository_ConcurrentCreate_SameUsername(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = ur.Create(ctx, newUser("race_user", fmt.Sprintf("race%d@example.com", i)))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		var conflict model.ConflictError
		switch {
		case err == nil:
			successes++
		case assert.ErrorAs(t, err, &conflict):
			conflicts++
			assert.Equal(t, "username", conflict.Field)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	var count int
	err = conn.QueryRow(ctx, `SELECT count(*) FROM users WHERE username = 'race_user'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserRepository_TouchLastLogin_Integration(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("touch_user", "touch@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)

	at := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, ur.TouchLastLogin(ctx, saved.ID, at))
	// Retrying with the same timestamp is safe.
	require.NoError(t, ur.TouchLastLogin(ctx, saved.ID, at))

	got, err := ur.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, got.LastLoginAt.After(got.CreatedAt))
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestUserRepository_Deactivate_Integration(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("gone_user", "gone@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)

	require.NoError(t, ur.Deactivate(ctx, saved.ID))

	got, err := ur.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
