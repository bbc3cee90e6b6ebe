package visibility

import (
	"testing"

	"blogring/backend/internal/database"
	"blogring/backend/internal/models"
	"blogring/backend/internal/relation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, loginID string) models.User {
	t.Helper()
	user := models.User{LoginID: loginID, PasswordHash: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)
	profile := models.Profile{
		UserID:             user.ID,
		Username:           loginID,
		BlogName:           loginID,
		URLName:            loginID,
		NeighborVisibility: true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return user
}

func makeNeighbors(t *testing.T, db *gorm.DB, a, b models.User) {
	t.Helper()
	request, err := relation.Request(db, a.ID, b.ID, "")
	require.NoError(t, err)
	require.NoError(t, relation.Accept(db, request.ID, b.ID))
}

func TestCanView(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	neighbor := seedUser(t, db, "neighbor")
	stranger := seedUser(t, db, "stranger")
	makeNeighbors(t, db, author, neighbor)

	post := func(v models.Visibility) *models.Post {
		return &models.Post{AuthorID: author.ID, Visibility: v}
	}

	cases := []struct {
		name       string
		visibility models.Visibility
		viewer     Viewer
		want       bool
	}{
		{"everyone/anonymous", models.VisibilityEveryone, Viewer{}, true},
		{"everyone/stranger", models.VisibilityEveryone, Viewer{UserID: stranger.ID}, true},
		{"mutual/anonymous", models.VisibilityMutual, Viewer{}, false},
		{"mutual/stranger", models.VisibilityMutual, Viewer{UserID: stranger.ID}, false},
		{"mutual/neighbor", models.VisibilityMutual, Viewer{UserID: neighbor.ID}, true},
		{"mutual/author", models.VisibilityMutual, Viewer{UserID: author.ID}, true},
		{"me/neighbor", models.VisibilityMe, Viewer{UserID: neighbor.ID}, false},
		{"me/author", models.VisibilityMe, Viewer{UserID: author.ID}, true},
		{"me/anonymous", models.VisibilityMe, Viewer{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CanView(db, post(tc.visibility), tc.viewer)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCanWriteRequiresIdentity(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	stranger := seedUser(t, db, "stranger")

	post := &models.Post{AuthorID: author.ID, Visibility: models.VisibilityEveryone}

	ok, err := CanWrite(db, post, Viewer{})
	require.NoError(t, err)
	assert.False(t, ok, "anonymous viewers can read but never write")

	ok, err = CanWrite(db, post, Viewer{UserID: stranger.ID})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanReact(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	neighbor := seedUser(t, db, "neighbor")
	stranger := seedUser(t, db, "stranger")
	makeNeighbors(t, db, author, neighbor)

	t.Run("me posts take no reactions at all", func(t *testing.T) {
		post := &models.Post{AuthorID: author.ID, Visibility: models.VisibilityMe}
		ok, err := CanReact(db, post, Viewer{UserID: author.ID})
		require.NoError(t, err)
		assert.False(t, ok, "even the author cannot react")
	})

	t.Run("mutual posts take reactions from neighbors", func(t *testing.T) {
		post := &models.Post{AuthorID: author.ID, Visibility: models.VisibilityMutual}

		ok, err := CanReact(db, post, Viewer{UserID: neighbor.ID})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = CanReact(db, post, Viewer{UserID: stranger.ID})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("anonymous viewers never react", func(t *testing.T) {
		post := &models.Post{AuthorID: author.ID, Visibility: models.VisibilityEveryone}
		ok, err := CanReact(db, post, Viewer{})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
