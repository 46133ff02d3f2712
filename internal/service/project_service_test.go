package service

import (
	"context"
	"testing"
	"time"

	"taskflowpro/internal/models"
	"taskflowpro/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()
	actor := regularUser(1, "owner")

	t.Run("valid project owned by actor", func(t *testing.T) {
		repo := noopProjectRepo()
		svc := NewProjectService(repo, noopUserRepo(), nil, "")
		project, err := svc.CreateProject(ctx, actor, CreateProjectInput{Name: "  Launch  "})
		require.NoError(t, err)
		assert.Equal(t, "Launch", project.Name, "name is trimmed")
		assert.Equal(t, actor.ID, project.OwnerID)
		assert.Equal(t, models.TaskPriorityMedium, project.Priority)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := NewProjectService(noopProjectRepo(), noopUserRepo(), nil, "")
		_, err := svc.CreateProject(ctx, actor, CreateProjectInput{Name: "   "})
		assertAppErrorCode(t, err, models.ErrCodeValidation)
	})
}

func TestProjectService_GetProject_Visibility(t *testing.T) {
	ctx := context.Background()
	owner := regularUser(1, "owner")
	member := regularUser(2, "member")
	stranger := regularUser(3, "stranger")
	admin := adminUser(4, "admin")

	repo := noopProjectRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Project, error) {
		return &models.Project{ID: 5, OwnerID: owner.ID}, nil
	}
	repo.isMemberFn = func(_ context.Context, _ uint, userID uint) (bool, error) {
		return userID == member.ID, nil
	}
	svc := NewProjectService(repo, noopUserRepo(), nil, "")

	for _, u := range []*models.User{owner, member, admin} {
		_, err := svc.GetProject(ctx, u, 5)
		assert.NoError(t, err, u.Username)
	}

	_, err := svc.GetProject(ctx, stranger, 5)
	assertAppErrorCode(t, err, models.ErrCodeNotFound)
}

func TestProjectService_InviteMember(t *testing.T) {
	ctx := context.Background()
	owner := regularUser(1, "owner")
	stranger := regularUser(3, "stranger")

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	project := &models.Project{
		ID:       5,
		Name:     "Launch",
		OwnerID:  owner.ID,
		Priority: models.TaskPriorityHigh,
		DueDate:  &due,
	}

	setup := func() (*projectRepoStub, *userRepoStub, *dispatcherStub) {
		projects := noopProjectRepo()
		projects.getByIDFn = func(context.Context, uint) (*models.Project, error) { return project, nil }
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "invitee"}, nil
		}
		return projects, users, &dispatcherStub{}
	}

	t.Run("invite fans out project.invitation with default role", func(t *testing.T) {
		projects, users, dispatcher := setup()
		var added *models.ProjectMember
		projects.addMemberFn = func(_ context.Context, m *models.ProjectMember) error {
			added = m
			return nil
		}

		svc := NewProjectService(projects, users, dispatcher, "http://app.local")
		member, err := svc.InviteMember(ctx, owner, project.ID, 7, "")
		require.NoError(t, err)
		assert.Equal(t, models.ProjectMemberRoleDefault, member.Role)
		require.NotNil(t, added)
		assert.Equal(t, uint(7), added.UserID)

		require.Len(t, dispatcher.deliveries, 1)
		d := dispatcher.deliveries[0]
		assert.Equal(t, notifications.EventProjectInvitation, d.Event)
		assert.Equal(t, []uint{7}, d.Recipients)
		assert.Equal(t, models.ProjectMemberRoleDefault, d.Payload["role"])
		assert.Equal(t, "2026-10-01", d.Payload["due_date"])
		assert.NotContains(t, d.Payload, "description", "empty description is omitted")
		assert.Equal(t, "http://app.local/projects/5", d.ActionURL)
		assert.True(t, d.HasChannel(notifications.ChannelMail))
	})

	t.Run("non-owner cannot invite", func(t *testing.T) {
		projects, users, dispatcher := setup()
		svc := NewProjectService(projects, users, dispatcher, "")
		_, err := svc.InviteMember(ctx, stranger, project.ID, 7, "")
		assertAppErrorCode(t, err, models.ErrCodeForbidden)
		assert.Empty(t, dispatcher.deliveries)
	})

	t.Run("inviting the owner is rejected", func(t *testing.T) {
		projects, users, dispatcher := setup()
		svc := NewProjectService(projects, users, dispatcher, "")
		_, err := svc.InviteMember(ctx, owner, project.ID, owner.ID, "")
		assertAppErrorCode(t, err, models.ErrCodeValidation)
		assert.Empty(t, dispatcher.deliveries)
	})

	t.Run("explicit role survives", func(t *testing.T) {
		projects, users, dispatcher := setup()
		svc := NewProjectService(projects, users, dispatcher, "")
		member, err := svc.InviteMember(ctx, owner, project.ID, 7, " maintainer ")
		require.NoError(t, err)
		assert.Equal(t, "maintainer", member.Role)
		require.Len(t, dispatcher.deliveries, 1)
		assert.Equal(t, "maintainer", dispatcher.deliveries[0].Payload["role"])
	})
}

func TestProjectService_UpdateProject(t *testing.T) {
	ctx := context.Background()
	owner := regularUser(1, "owner")
	admin := adminUser(4, "admin")
	stranger := regularUser(3, "stranger")

	newProject := func() *models.Project {
		return &models.Project{ID: 5, Name: "Launch", OwnerID: owner.ID, Priority: models.TaskPriorityMedium}
	}

	t.Run("owner and admin may edit, stranger may not", func(t *testing.T) {
		for _, tt := range []struct {
			actor    *models.User
			wantCode string
		}{
			{owner, ""},
			{admin, ""},
			{stranger, models.ErrCodeForbidden},
		} {
			repo := noopProjectRepo()
			repo.getByIDFn = func(context.Context, uint) (*models.Project, error) { return newProject(), nil }
			svc := NewProjectService(repo, noopUserRepo(), nil, "")

			name := "Renamed"
			_, err := svc.UpdateProject(ctx, tt.actor, 5, UpdateProjectInput{Name: &name})
			if tt.wantCode != "" {
				assertAppErrorCode(t, err, tt.wantCode)
				continue
			}
			assert.NoError(t, err, tt.actor.Username)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		repo := noopProjectRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.Project, error) { return newProject(), nil }
		svc := NewProjectService(repo, noopUserRepo(), nil, "")

		name := "  "
		_, err := svc.UpdateProject(ctx, owner, 5, UpdateProjectInput{Name: &name})
		assertAppErrorCode(t, err, models.ErrCodeValidation)
	})
}

func TestProjectService_Members(t *testing.T) {
	ctx := context.Background()
	owner := regularUser(1, "owner")
	stranger := regularUser(3, "stranger")

	repo := noopProjectRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Project, error) {
		return &models.Project{ID: 5, OwnerID: owner.ID}, nil
	}
	repo.membersFn = func(context.Context, uint) ([]models.ProjectMember, error) {
		return []models.ProjectMember{{ProjectID: 5, UserID: 7, Role: "member"}}, nil
	}
	svc := NewProjectService(repo, noopUserRepo(), nil, "")

	members, err := svc.Members(ctx, owner, 5)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	_, err = svc.Members(ctx, stranger, 5)
	assertAppErrorCode(t, err, models.ErrCodeNotFound)
}
