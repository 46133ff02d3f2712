// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"taskflowpro/internal/bootstrap"
	"taskflowpro/internal/config"
	"taskflowpro/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.NumUsers, "Number of users to create")
	numAdmins := flag.Int("admins", defaults.NumAdmins, "Number of admin users to create")
	numProjects := flag.Int("projects", defaults.NumProjects, "Number of projects to create")
	numPosts := flag.Int("posts", defaults.NumPosts, "Number of posts to create")
	tasksPerProject := flag.Int("tasks-per-project", defaults.TasksPerProject, "Tasks to create per project")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedBuiltIns: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	err = seed.Seed(db, seed.Options{
		NumUsers:        *numUsers,
		NumAdmins:       *numAdmins,
		NumProjects:     *numProjects,
		NumPosts:        *numPosts,
		TasksPerProject: *tasksPerProject,
		ShouldClean:     *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Every seeded account uses the password: Password123!")
}
