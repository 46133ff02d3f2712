// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"taskflowpro/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// sharedSeedPassword is the bcrypt hash every seeded account shares so
// developers can log in as any of them.
var sharedSeedPassword string

func seedPasswordHash() (string, error) {
	if sharedSeedPassword != "" {
		return sharedSeedPassword, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	if err != nil {
		return "", err
	}
	sharedSeedPassword = string(hashed)
	return sharedSeedPassword, nil
}

// CreateUser persists a user with a realistic username and email. All seeded
// accounts share the password "Password123!".
func (f *Factory) CreateUser(roles ...models.RoleName) (*models.User, error) {
	hashed, err := seedPasswordHash()
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	username := strings.ToLower(fmt.Sprintf("%s_%s%d",
		gofakeit.FirstName(), gofakeit.LastName(), f.rng.Intn(10000)))

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password: hashed,
		Status:   models.UserStatusActive,
	}
	user.CreatedAt = f.pastTime(180)

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	for _, name := range roles {
		var role models.Role
		if err := f.db.Where("name = ?", name).First(&role).Error; err != nil {
			return nil, fmt.Errorf("role %q not seeded: %w", name, err)
		}
		if err := f.db.Model(user).Association("Roles").Append(&role); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// CreatePost persists a post owned by the user in the given moderation state.
// Non-draft states get plausible moderation metadata attributed to the
// moderator.
func (f *Factory) CreatePost(user *models.User, status models.PostStatus, moderator *models.User) (*models.Post, error) {
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:  user.ID,
		Status:  status,
	}
	post.CreatedAt = f.pastTime(90)

	if status != models.PostStatusDraft && moderator != nil {
		moderatedAt := post.CreatedAt.Add(time.Duration(1+f.rng.Intn(72)) * time.Hour)
		post.ModeratedBy = &moderator.ID
		post.ModeratedAt = &moderatedAt
		switch status {
		case models.PostStatusRejected:
			post.ModerationNotes = "Rejected: " + gofakeit.Sentence(6)
		case models.PostStatusFlagged:
			post.ModerationNotes = "Flagged: " + gofakeit.Sentence(6)
		}
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateProject persists a project owned by the user and invites the given
// members with the default project role.
func (f *Factory) CreateProject(owner *models.User, members ...*models.User) (*models.Project, error) {
	priorities := []models.TaskPriority{
		models.TaskPriorityLow, models.TaskPriorityMedium,
		models.TaskPriorityHigh, models.TaskPriorityUrgent,
	}

	project := &models.Project{
		Name:        gofakeit.AppName() + " " + gofakeit.BuzzWord(),
		Description: gofakeit.Sentence(12),
		Priority:    priorities[f.rng.Intn(len(priorities))],
		OwnerID:     owner.ID,
	}
	if f.rng.Intn(2) == 0 {
		due := time.Now().Add(time.Duration(7+f.rng.Intn(60)) * 24 * time.Hour)
		project.DueDate = &due
	}
	project.CreatedAt = f.pastTime(120)

	if err := f.db.Create(project).Error; err != nil {
		return nil, err
	}

	for _, member := range members {
		if member.ID == owner.ID {
			continue
		}
		pm := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    member.ID,
			Role:      models.ProjectMemberRoleDefault,
		}
		if err := f.db.Create(pm).Error; err != nil {
			return nil, err
		}
	}
	return project, nil
}

// CreateTask persists a task inside the project, created by creator and
// optionally assigned.
func (f *Factory) CreateTask(creator *models.User, project *models.Project, assignee *models.User) (*models.Task, error) {
	statuses := []models.TaskStatus{
		models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted,
	}
	priorities := []models.TaskPriority{
		models.TaskPriorityLow, models.TaskPriorityMedium,
		models.TaskPriorityHigh, models.TaskPriorityUrgent,
	}

	task := &models.Task{
		Title:       gofakeit.VerbAction() + " " + gofakeit.BuzzWord(),
		Description: gofakeit.Sentence(10),
		CreatedBy:   creator.ID,
		Priority:    priorities[f.rng.Intn(len(priorities))],
		Status:      statuses[f.rng.Intn(len(statuses))],
	}
	if project != nil {
		task.ProjectID = &project.ID
	}
	if assignee != nil {
		task.AssignedTo = &assignee.ID
	}
	if f.rng.Intn(3) > 0 {
		due := time.Now().Add(time.Duration(1+f.rng.Intn(30)) * 24 * time.Hour)
		task.DueDate = &due
	}
	task.CreatedAt = f.pastTime(60)

	if err := f.db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// pastTime returns a time spread over the last maxDays days.
func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}
