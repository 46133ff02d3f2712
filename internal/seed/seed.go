package seed

import (
	"fmt"
	"log"

	"taskflowpro/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumAdmins       int
	NumProjects     int
	NumPosts        int
	TasksPerProject int
	ShouldClean     bool
}

// DefaultOptions returns the preset used by the seed command.
func DefaultOptions() Options {
	return Options{
		NumUsers:        25,
		NumAdmins:       2,
		NumProjects:     8,
		NumPosts:        60,
		TasksPerProject: 6,
		ShouldClean:     false,
	}
}

// postStatusDistribution spreads seeded posts over the moderation lifecycle:
// weights out of 10.
var postStatusDistribution = []struct {
	status models.PostStatus
	weight int
}{
	{models.PostStatusDraft, 3},
	{models.PostStatusPublished, 5},
	{models.PostStatusFlagged, 1},
	{models.PostStatusRejected, 1},
}

// Roles ensures the fixed role rows exist. It is idempotent and safe to run
// on every startup.
func Roles(db *gorm.DB) error {
	for _, name := range models.AllRoles {
		var role models.Role
		if err := db.Where("name = ?", name).
			FirstOrCreate(&role, models.Role{Name: name}).Error; err != nil {
			return fmt.Errorf("ensure role %q: %w", name, err)
		}
	}
	return nil
}

// Seed populates the database with demo data: users, admins, posts across
// every moderation state, projects with members and tasks.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database: %d users, %d admins, %d projects, %d posts...",
		opts.NumUsers, opts.NumAdmins, opts.NumProjects, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Roles(db); err != nil {
		return err
	}

	f := NewFactory(db)

	admins := make([]*models.User, 0, opts.NumAdmins)
	for i := 0; i < opts.NumAdmins; i++ {
		admin, err := f.CreateUser(models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		admins = append(admins, admin)
	}
	log.Printf("Created %d admins", len(admins))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser(models.RoleUser)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	posts := 0
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		status := pickStatus(f, postStatusDistribution)
		var moderator *models.User
		if len(admins) > 0 {
			moderator = admins[f.rng.Intn(len(admins))]
		}
		if _, err := f.CreatePost(author, status, moderator); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts++
	}
	log.Printf("Created %d posts", posts)

	tasks := 0
	for i := 0; i < opts.NumProjects; i++ {
		owner := users[f.rng.Intn(len(users))]
		memberCount := 2 + f.rng.Intn(4)
		members := make([]*models.User, 0, memberCount)
		for j := 0; j < memberCount; j++ {
			members = append(members, users[f.rng.Intn(len(users))])
		}

		project, err := f.CreateProject(owner, members...)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		pool := append([]*models.User{owner}, members...)
		for j := 0; j < opts.TasksPerProject; j++ {
			creator := pool[f.rng.Intn(len(pool))]
			var assignee *models.User
			if f.rng.Intn(3) > 0 {
				assignee = pool[f.rng.Intn(len(pool))]
			}
			if _, err := f.CreateTask(creator, project, assignee); err != nil {
				return fmt.Errorf("create task: %w", err)
			}
			tasks++
		}
	}
	log.Printf("Created %d projects with %d tasks", opts.NumProjects, tasks)

	log.Println("Seeding complete")
	return nil
}

func pickStatus(f *Factory, dist []struct {
	status models.PostStatus
	weight int
}) models.PostStatus {
	total := 0
	for _, d := range dist {
		total += d.weight
	}
	n := f.rng.Intn(total)
	for _, d := range dist {
		if n < d.weight {
			return d.status
		}
		n -= d.weight
	}
	return models.PostStatusDraft
}

// clearData removes seeded rows in dependency order. The superadmin account
// at ID 1 is preserved.
func clearData(db *gorm.DB) error {
	steps := []struct {
		desc  string
		query string
	}{
		{"notifications", "DELETE FROM notifications"},
		{"audit logs", "DELETE FROM audit_logs"},
		{"tasks", "DELETE FROM tasks"},
		{"project members", "DELETE FROM project_members"},
		{"projects", "DELETE FROM projects"},
		{"posts", "DELETE FROM posts"},
		{"user roles", "DELETE FROM user_roles WHERE user_id <> 1"},
		{"users", "DELETE FROM users WHERE id <> 1"},
	}
	for _, step := range steps {
		if err := db.Exec(step.query).Error; err != nil {
			return fmt.Errorf("clear %s: %w", step.desc, err)
		}
	}
	return nil
}
