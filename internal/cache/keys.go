package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	PostKeyPrefix         = "post:%d"
	ProjectKeyPrefix      = "project:%d"
	TaskKeyPrefix         = "task:%d"
	ModerationQueuePrefix = "moderation:queue"
)

const (
	UserTTL            = 5 * time.Minute
	PostTTL            = 30 * time.Minute
	ProjectTTL         = 10 * time.Minute
	TaskTTL            = 10 * time.Minute
	ModerationQueueTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ProjectKey(projectID uint) string {
	return fmt.Sprintf(ProjectKeyPrefix, projectID)
}

func TaskKey(taskID uint) string {
	return fmt.Sprintf(TaskKeyPrefix, taskID)
}

func ModerationQueueKey() string {
	return ModerationQueuePrefix
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, ModerationQueueKey())
}

func InvalidateProject(ctx context.Context, projectID uint) {
	Invalidate(ctx, ProjectKey(projectID))
}

func InvalidateTask(ctx context.Context, taskID uint) {
	Invalidate(ctx, TaskKey(taskID))
}
