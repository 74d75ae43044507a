package repository

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"recipebox/internal/apperrors"
	"recipebox/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         NewGormLogger(nil, false),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func ptr[T any](v T) *T { return &v }

func TestStore_Users(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	user := &models.User{Username: "chef", Bio: ptr("Loves soup")}
	require.NoError(t, user.SetPassword("hunter22"))
	require.NoError(t, store.InsertUser(ctx, user))
	assert.NotZero(t, user.ID)

	t.Run("Find by username", func(t *testing.T) {
		got, err := store.FindUserByUsername(ctx, "chef")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "Loves soup", *got.Bio)
		assert.Nil(t, got.ImageURL)
		assert.True(t, got.VerifyPassword("hunter22"))
	})

	t.Run("Find by id", func(t *testing.T) {
		got, err := store.FindUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "chef", got.Username)
	})

	t.Run("Absent", func(t *testing.T) {
		_, err := store.FindUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.FindUserByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		dup := &models.User{Username: "chef"}
		err := store.InsertUser(ctx, dup)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

		var count int64
		store.db.Model(&models.User{}).Where("username = ?", "chef").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Hook rejects blank username", func(t *testing.T) {
		err := store.InsertUser(ctx, &models.User{Username: "   "})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("User without password", func(t *testing.T) {
		nopw := &models.User{Username: "nopw"}
		require.NoError(t, store.InsertUser(ctx, nopw))

		got, err := store.FindUserByID(ctx, nopw.ID)
		require.NoError(t, err)
		assert.False(t, got.Password.IsSet())
		assert.False(t, got.VerifyPassword(""))
	})
}

func TestStore_ConcurrentSignupKeepsUsernameUnique(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	store := NewStore(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.InsertUser(ctx, &models.User{Username: "racer"})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	}
	assert.Equal(t, 1, succeeded)
}

func TestStore_Recipes(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	alice := &models.User{Username: "alice"}
	bob := &models.User{Username: "bob"}
	require.NoError(t, store.InsertUser(ctx, alice))
	require.NoError(t, store.InsertUser(ctx, bob))

	instructions := strings.Repeat("Simmer gently. ", 5)
	r1 := &models.Recipe{Title: "Soup", Instructions: instructions, MinutesToComplete: ptr(30), UserID: &alice.ID}
	r2 := &models.Recipe{Title: "Stew", Instructions: instructions, UserID: &alice.ID}
	r3 := &models.Recipe{Title: "Bread", Instructions: instructions, UserID: &bob.ID}
	for _, r := range []*models.Recipe{r1, r2, r3} {
		require.NoError(t, store.InsertRecipe(ctx, r))
		assert.NotZero(t, r.ID)
	}

	aliceRecipes, err := store.ListRecipesByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceRecipes, 2)
	assert.Equal(t, "Soup", aliceRecipes[0].Title)
	assert.Equal(t, 30, *aliceRecipes[0].MinutesToComplete)
	assert.Equal(t, "Stew", aliceRecipes[1].Title)
	assert.Nil(t, aliceRecipes[1].MinutesToComplete)

	bobRecipes, err := store.ListRecipesByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobRecipes, 1)
	assert.Equal(t, bob.ID, *bobRecipes[0].UserID)

	empty, err := store.ListRecipesByUser(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	t.Run("Hook enforces instruction length", func(t *testing.T) {
		short := &models.Recipe{Title: "Toast", Instructions: strings.Repeat("a", 49), UserID: &alice.ID}
		err := store.InsertRecipe(ctx, short)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Zero(t, short.ID)
	})
}

func TestStore_Errors(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	require.NoError(t, db.Migrator().DropTable(&models.Recipe{}, &models.User{}))

	_, err := store.FindUserByUsername(ctx, "chef")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = store.ListRecipesByUser(ctx, 1)
	assert.Error(t, err)

	err = store.InsertUser(ctx, &models.User{Username: "chef"})
	assert.Error(t, err)
	_, isApp := apperrors.As(err)
	assert.False(t, isApp)
}

func TestStore_FailedInsertDoesNotLogPasswordHash(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         NewGormLogger(logger, false),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	store := NewStore(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		user := &models.User{Username: "chef"}
		require.NoError(t, user.SetPassword("hunter22"))
		err = store.InsertUser(ctx, user)
	}
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	out := buf.String()
	assert.Contains(t, out, "Query failed")
	assert.Contains(t, out, "INSERT INTO")
	assert.NotContains(t, out, "$2a$")
	assert.NotContains(t, out, "chef")
}
