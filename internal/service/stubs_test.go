package service

import (
	"context"

	"taskflowpro/internal/models"
	"taskflowpro/internal/notifications"
)

// Function-field stubs for the repository interfaces. Tests override only
// the fields they care about.

type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	getByUserIDFn     func(context.Context, uint, int, int) ([]*models.Post, error)
	listByStatusFn    func(context.Context, models.PostStatus, int, int) ([]*models.Post, error)
	listPublishedFn   func(context.Context, int, int) ([]*models.Post, error)
	listAllFn         func(context.Context, int, int) ([]*models.Post, error)
	moderationQueueFn func(context.Context, int, int) ([]*models.Post, error)
	searchFn          func(context.Context, string, int, int) ([]*models.Post, error)
	searchAllFn       func(context.Context, string, int, int) ([]*models.Post, error)
	updateFn          func(context.Context, *models.Post) error
	deleteFn          func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListByStatus(ctx context.Context, status models.PostStatus, limit, offset int) ([]*models.Post, error) {
	return s.listByStatusFn(ctx, status, limit, offset)
}
func (s *postRepoStub) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listPublishedFn(ctx, limit, offset)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *postRepoStub) ModerationQueue(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.moderationQueueFn(ctx, limit, offset)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *postRepoStub) SearchAll(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	return s.searchAllFn(ctx, query, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:          func(context.Context, *models.Post) error { return nil },
		getByIDFn:         func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		getByUserIDFn:     func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		listByStatusFn:    func(context.Context, models.PostStatus, int, int) ([]*models.Post, error) { return nil, nil },
		listPublishedFn:   func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		listAllFn:         func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		moderationQueueFn: func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		searchFn:          func(context.Context, string, int, int) ([]*models.Post, error) { return nil, nil },
		searchAllFn:       func(context.Context, string, int, int) ([]*models.Post, error) { return nil, nil },
		updateFn:          func(context.Context, *models.Post) error { return nil },
		deleteFn:          func(context.Context, uint) error { return nil },
	}
}

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByIDWithPostsFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, int, int) ([]models.User, error)
	searchFn           func(context.Context, string, int, int) ([]models.User, error)
	getRoleByNameFn    func(context.Context, models.RoleName) (*models.Role, error)
	setRolesFn         func(context.Context, *models.User, []models.Role) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *userRepoStub) GetRoleByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	return s.getRoleByNameFn(ctx, name)
}
func (s *userRepoStub) SetRoles(ctx context.Context, user *models.User, roles []models.Role) error {
	return s.setRolesFn(ctx, user, roles)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithPostsFn: func(context.Context, uint, int) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		listFn:             func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:           func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
		getRoleByNameFn: func(_ context.Context, name models.RoleName) (*models.Role, error) {
			return &models.Role{ID: 1, Name: name}, nil
		},
		setRolesFn: func(_ context.Context, user *models.User, roles []models.Role) error {
			user.Roles = roles
			return nil
		},
	}
}

type auditRepoStub struct {
	createFn       func(context.Context, *models.AuditLog) error
	listFn         func(context.Context, int, int) ([]models.AuditLog, error)
	listByEntityFn func(context.Context, string, uint, int, int) ([]models.AuditLog, error)
}

func (s *auditRepoStub) Create(ctx context.Context, entry *models.AuditLog) error {
	return s.createFn(ctx, entry)
}
func (s *auditRepoStub) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *auditRepoStub) ListByEntity(ctx context.Context, entityType string, entityID uint, limit, offset int) ([]models.AuditLog, error) {
	return s.listByEntityFn(ctx, entityType, entityID, limit, offset)
}

func noopAuditRepo() *auditRepoStub {
	return &auditRepoStub{
		createFn:       func(context.Context, *models.AuditLog) error { return nil },
		listFn:         func(context.Context, int, int) ([]models.AuditLog, error) { return nil, nil },
		listByEntityFn: func(context.Context, string, uint, int, int) ([]models.AuditLog, error) { return nil, nil },
	}
}

type taskRepoStub struct {
	createFn         func(context.Context, *models.Task) error
	getByIDFn        func(context.Context, uint) (*models.Task, error)
	listByProjectFn  func(context.Context, uint, int, int) ([]*models.Task, error)
	listByAssigneeFn func(context.Context, uint, int, int) ([]*models.Task, error)
	listByCreatorFn  func(context.Context, uint, int, int) ([]*models.Task, error)
	searchFn         func(context.Context, string, int, int) ([]*models.Task, error)
	updateFn         func(context.Context, *models.Task) error
	deleteFn         func(context.Context, uint) error
}

func (s *taskRepoStub) Create(ctx context.Context, task *models.Task) error {
	return s.createFn(ctx, task)
}
func (s *taskRepoStub) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	return s.getByIDFn(ctx, id)
}
func (s *taskRepoStub) ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]*models.Task, error) {
	return s.listByProjectFn(ctx, projectID, limit, offset)
}
func (s *taskRepoStub) ListByAssignee(ctx context.Context, userID uint, limit, offset int) ([]*models.Task, error) {
	return s.listByAssigneeFn(ctx, userID, limit, offset)
}
func (s *taskRepoStub) ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]*models.Task, error) {
	return s.listByCreatorFn(ctx, userID, limit, offset)
}
func (s *taskRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Task, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *taskRepoStub) Update(ctx context.Context, task *models.Task) error {
	return s.updateFn(ctx, task)
}
func (s *taskRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopTaskRepo() *taskRepoStub {
	return &taskRepoStub{
		createFn:         func(context.Context, *models.Task) error { return nil },
		getByIDFn:        func(context.Context, uint) (*models.Task, error) { return &models.Task{}, nil },
		listByProjectFn:  func(context.Context, uint, int, int) ([]*models.Task, error) { return nil, nil },
		listByAssigneeFn: func(context.Context, uint, int, int) ([]*models.Task, error) { return nil, nil },
		listByCreatorFn:  func(context.Context, uint, int, int) ([]*models.Task, error) { return nil, nil },
		searchFn:         func(context.Context, string, int, int) ([]*models.Task, error) { return nil, nil },
		updateFn:         func(context.Context, *models.Task) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
	}
}

type projectRepoStub struct {
	createFn       func(context.Context, *models.Project) error
	getByIDFn      func(context.Context, uint) (*models.Project, error)
	listByOwnerFn  func(context.Context, uint, int, int) ([]*models.Project, error)
	listForUserFn  func(context.Context, uint, int, int) ([]*models.Project, error)
	searchFn       func(context.Context, string, int, int) ([]*models.Project, error)
	updateFn       func(context.Context, *models.Project) error
	deleteFn       func(context.Context, uint) error
	addMemberFn    func(context.Context, *models.ProjectMember) error
	removeMemberFn func(context.Context, uint, uint) error
	isMemberFn     func(context.Context, uint, uint) (bool, error)
	membersFn      func(context.Context, uint) ([]models.ProjectMember, error)
}

func (s *projectRepoStub) Create(ctx context.Context, project *models.Project) error {
	return s.createFn(ctx, project)
}
func (s *projectRepoStub) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return s.getByIDFn(ctx, id)
}
func (s *projectRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Project, error) {
	return s.listByOwnerFn(ctx, ownerID, limit, offset)
}
func (s *projectRepoStub) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Project, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}
func (s *projectRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Project, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *projectRepoStub) Update(ctx context.Context, project *models.Project) error {
	return s.updateFn(ctx, project)
}
func (s *projectRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *projectRepoStub) AddMember(ctx context.Context, member *models.ProjectMember) error {
	return s.addMemberFn(ctx, member)
}
func (s *projectRepoStub) RemoveMember(ctx context.Context, projectID, userID uint) error {
	return s.removeMemberFn(ctx, projectID, userID)
}
func (s *projectRepoStub) IsMember(ctx context.Context, projectID, userID uint) (bool, error) {
	return s.isMemberFn(ctx, projectID, userID)
}
func (s *projectRepoStub) Members(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	return s.membersFn(ctx, projectID)
}

func noopProjectRepo() *projectRepoStub {
	return &projectRepoStub{
		createFn:       func(context.Context, *models.Project) error { return nil },
		getByIDFn:      func(context.Context, uint) (*models.Project, error) { return &models.Project{}, nil },
		listByOwnerFn:  func(context.Context, uint, int, int) ([]*models.Project, error) { return nil, nil },
		listForUserFn:  func(context.Context, uint, int, int) ([]*models.Project, error) { return nil, nil },
		searchFn:       func(context.Context, string, int, int) ([]*models.Project, error) { return nil, nil },
		updateFn:       func(context.Context, *models.Project) error { return nil },
		deleteFn:       func(context.Context, uint) error { return nil },
		addMemberFn:    func(context.Context, *models.ProjectMember) error { return nil },
		removeMemberFn: func(context.Context, uint, uint) error { return nil },
		isMemberFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
		membersFn:      func(context.Context, uint) ([]models.ProjectMember, error) { return nil, nil },
	}
}

// dispatcherStub records dispatched deliveries.
type dispatcherStub struct {
	deliveries []notifications.Delivery
}

func (s *dispatcherStub) Dispatch(_ context.Context, d notifications.Delivery) {
	s.deliveries = append(s.deliveries, d)
}

// test users

func regularUser(id uint, username string) *models.User {
	return &models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Status:   models.UserStatusActive,
		Roles:    []models.Role{{ID: 3, Name: models.RoleUser}},
	}
}

func adminUser(id uint, username string) *models.User {
	return &models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Status:   models.UserStatusActive,
		Roles:    []models.Role{{ID: 2, Name: models.RoleAdmin}},
	}
}

func superadminUser(id uint, username string) *models.User {
	return &models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Status:   models.UserStatusActive,
		Roles:    []models.Role{{ID: 1, Name: models.RoleSuperadmin}},
	}
}
