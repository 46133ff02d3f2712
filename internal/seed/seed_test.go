package seed

import (
	"testing"

	"taskflowpro/internal/database"
	"taskflowpro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestRoles_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Roles(db))
	require.NoError(t, Roles(db))

	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	assert.Equal(t, int64(len(models.AllRoles)), count)
}

func TestSeed_PopulatesAllEntities(t *testing.T) {
	db := setupTestDB(t)

	opts := Options{
		NumUsers:        5,
		NumAdmins:       1,
		NumProjects:     2,
		NumPosts:        12,
		TasksPerProject: 3,
	}
	require.NoError(t, Seed(db, opts))

	var userCount, postCount, projectCount, taskCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Project{}).Count(&projectCount).Error)
	require.NoError(t, db.Model(&models.Task{}).Count(&taskCount).Error)

	assert.Equal(t, int64(opts.NumUsers+opts.NumAdmins), userCount)
	assert.Equal(t, int64(opts.NumPosts), postCount)
	assert.Equal(t, int64(opts.NumProjects), projectCount)
	assert.Equal(t, int64(opts.NumProjects*opts.TasksPerProject), taskCount)
}

func TestSeed_ModeratedPostsCarryMetadata(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{
		NumUsers:  3,
		NumAdmins: 1,
		NumPosts:  40,
	}))

	var moderated []models.Post
	require.NoError(t, db.Where("status <> ?", models.PostStatusDraft).Find(&moderated).Error)

	for _, post := range moderated {
		assert.NotNil(t, post.ModeratedBy, "post %d in state %s missing moderator", post.ID, post.Status)
		assert.NotNil(t, post.ModeratedAt, "post %d in state %s missing moderation time", post.ID, post.Status)
		if post.Status == models.PostStatusRejected || post.Status == models.PostStatusFlagged {
			assert.NotEmpty(t, post.ModerationNotes, "post %d in state %s missing notes", post.ID, post.Status)
		}
	}
}

func TestClearData_PreservesRootAccount(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Roles(db))

	root := &models.User{
		ID:       1,
		Username: "root",
		Email:    "root@taskflowpro.local",
		Password: "hashed",
		Status:   models.UserStatusActive,
	}
	require.NoError(t, db.Create(root).Error)

	f := NewFactory(db)
	other, err := f.CreateUser(models.RoleUser)
	require.NoError(t, err)
	_, err = f.CreatePost(other, models.PostStatusDraft, nil)
	require.NoError(t, err)

	require.NoError(t, clearData(db))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, uint(1), users[0].ID)

	var postCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Zero(t, postCount)
}
