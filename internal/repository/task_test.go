package repository

import (
	"context"
	"testing"

	"taskflowpro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	assignee := createTestUser(t, db, "assignee")

	task := &models.Task{
		Title:      "Write release notes",
		CreatedBy:  creator.ID,
		AssignedTo: &assignee.ID,
		Priority:   models.TaskPriorityHigh,
		Status:     models.TaskStatusPending,
	}
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write release notes", got.Title)
	require.NotNil(t, got.Assignee)
	assert.Equal(t, "assignee", got.Assignee.Username)
	assert.Equal(t, "creator", got.Creator.Username)
	assert.Nil(t, got.ProjectID, "standalone tasks have no project")
}

func TestTaskRepository_ListByAssignee(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	assignee := createTestUser(t, db, "assignee")

	require.NoError(t, repo.Create(ctx, &models.Task{Title: "mine", CreatedBy: creator.ID, AssignedTo: &assignee.ID}))
	require.NoError(t, repo.Create(ctx, &models.Task{Title: "unassigned", CreatedBy: creator.ID}))

	tasks, err := repo.ListByAssignee(ctx, assignee.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Title)
}

func TestTaskRepository_Search_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	require.NoError(t, repo.Create(ctx, &models.Task{Title: "Deploy Staging", CreatedBy: creator.ID}))

	tasks, err := repo.Search(ctx, "staging", 50, 0)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
