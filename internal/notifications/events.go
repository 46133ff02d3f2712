package notifications

import (
	"fmt"
	"sort"
	"strings"

	"taskflowpro/internal/models"
)

// Channel is a delivery mechanism for a domain event.
type Channel string

const (
	// ChannelDatabase persists a notification record for the recipient.
	ChannelDatabase Channel = "database"
	// ChannelBroadcast pushes the payload over the live websocket channel.
	ChannelBroadcast Channel = "broadcast"
	// ChannelMail sends an email to the recipient.
	ChannelMail Channel = "mail"
)

// Event names the domain events that trigger notification fan-out.
type Event string

const (
	EventTaskAssigned      Event = "task.assigned"
	EventTaskUpdated       Event = "task.updated"
	EventProjectInvitation Event = "project.invitation"
)

// Change captures a single field mutation for update notifications.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Delivery is a pure description of what a domain event should deliver:
// which channels, to whom, and with what payload. Builders never touch
// transports; the Dispatcher interprets the value.
type Delivery struct {
	Event      Event          `json:"event"`
	Channels   []Channel      `json:"channels"`
	Recipients []uint         `json:"recipients"`
	Payload    map[string]any `json:"payload"`
	Subject    string         `json:"subject"`
	Lines      []string       `json:"lines"`
	ActionURL  string         `json:"action_url"`
}

// HasChannel reports whether the delivery targets the given channel.
func (d Delivery) HasChannel(ch Channel) bool {
	for _, c := range d.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// TaskAssigned builds the fan-out for a task being assigned. The assignee is
// the only recipient; absent relations (no project, no due date) are simply
// omitted from payload and rendered lines.
func TaskAssigned(task models.Task, project *models.Project, assigner models.User, baseURL string) Delivery {
	payload := map[string]any{
		"task_id":     task.ID,
		"title":       task.Title,
		"priority":    task.Priority,
		"assigned_by": assigner.Username,
	}
	lines := []string{
		fmt.Sprintf("You have been assigned the task %q by %s.", task.Title, assigner.Username),
		fmt.Sprintf("Priority: %s", task.Priority),
	}

	if project != nil {
		payload["project"] = project.Name
		lines = append(lines, fmt.Sprintf("Project: %s", project.Name))
	}
	if task.DueDate != nil {
		payload["due_date"] = task.DueDate.Format("2006-01-02")
		lines = append(lines, fmt.Sprintf("Due: %s", task.DueDate.Format("2006-01-02")))
	}

	var recipients []uint
	if task.AssignedTo != nil {
		recipients = []uint{*task.AssignedTo}
	}

	return Delivery{
		Event:      EventTaskAssigned,
		Channels:   []Channel{ChannelDatabase, ChannelBroadcast, ChannelMail},
		Recipients: recipients,
		Payload:    payload,
		Subject:    fmt.Sprintf("New task assigned: %s", task.Title),
		Lines:      lines,
		ActionURL:  taskURL(baseURL, task.ID),
	}
}

// TaskUpdated builds the fan-out for a task mutation. Recipients are the
// deduplicated set of: assignee (if set), creator (if set and not the
// updater), and project owner (if the task belongs to a project and the
// owner is not the updater). No email is sent for plain updates.
func TaskUpdated(task models.Task, project *models.Project, updater models.User, changes map[string]Change, baseURL string) Delivery {
	var recipients []uint
	seen := map[uint]struct{}{}
	add := func(id uint) {
		if id == 0 {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	if task.AssignedTo != nil {
		add(*task.AssignedTo)
	}
	if task.CreatedBy != 0 && task.CreatedBy != updater.ID {
		add(task.CreatedBy)
	}
	if project != nil && project.OwnerID != updater.ID {
		add(project.OwnerID)
	}

	lines := []string{
		fmt.Sprintf("%s updated the task %q.", updater.Username, task.Title),
	}
	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		ch := changes[field]
		lines = append(lines, fmt.Sprintf("%s: %s → %s", field, ch.Old, ch.New))
	}

	return Delivery{
		Event:      EventTaskUpdated,
		Channels:   []Channel{ChannelDatabase, ChannelBroadcast},
		Recipients: recipients,
		Payload: map[string]any{
			"task_id":    task.ID,
			"title":      task.Title,
			"updated_by": updater.Username,
			"changes":    changes,
		},
		Subject:   fmt.Sprintf("Task updated: %s", task.Title),
		Lines:     lines,
		ActionURL: taskURL(baseURL, task.ID),
	}
}

// ProjectInvitation builds the fan-out for inviting a user into a project.
// The invited user is the only recipient. Empty description and nil due date
// produce no line at all rather than a placeholder.
func ProjectInvitation(project models.Project, inviter models.User, inviteeID uint, role, baseURL string) Delivery {
	if role == "" {
		role = models.ProjectMemberRoleDefault
	}

	payload := map[string]any{
		"project_id": project.ID,
		"name":       project.Name,
		"priority":   project.Priority,
		"invited_by": inviter.Username,
		"role":       role,
	}
	lines := []string{
		fmt.Sprintf("%s invited you to the project %q as %s.", inviter.Username, project.Name, role),
		fmt.Sprintf("Priority: %s", project.Priority),
	}

	if desc := strings.TrimSpace(project.Description); desc != "" {
		payload["description"] = desc
		lines = append(lines, fmt.Sprintf("Description: %s", desc))
	}
	if project.DueDate != nil {
		payload["due_date"] = project.DueDate.Format("2006-01-02")
		lines = append(lines, fmt.Sprintf("Due: %s", project.DueDate.Format("2006-01-02")))
	}

	return Delivery{
		Event:      EventProjectInvitation,
		Channels:   []Channel{ChannelDatabase, ChannelBroadcast, ChannelMail},
		Recipients: []uint{inviteeID},
		Payload:    payload,
		Subject:    fmt.Sprintf("Invitation to project: %s", project.Name),
		Lines:      lines,
		ActionURL:  projectURL(baseURL, project.ID),
	}
}

func taskURL(baseURL string, id uint) string {
	return fmt.Sprintf("%s/tasks/%d", strings.TrimRight(baseURL, "/"), id)
}

func projectURL(baseURL string, id uint) string {
	return fmt.Sprintf("%s/projects/%d", strings.TrimRight(baseURL, "/"), id)
}
