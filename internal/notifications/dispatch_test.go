package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"taskflowpro/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeStub struct {
	created []*models.Notification
	err     error
}

func (s *storeStub) Create(_ context.Context, n *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, n)
	return nil
}

type directoryStub struct {
	users map[uint]*models.User
}

func (d *directoryStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return u, nil
}

type mailerStub struct {
	configured bool
	sent       chan string
}

func (m *mailerStub) IsConfigured() bool { return m.configured }
func (m *mailerStub) Send(to, subject, _ string) error {
	m.sent <- to + "|" + subject
	return nil
}

func TestDispatcher_PersistsDatabaseChannel(t *testing.T) {
	t.Parallel()

	store := &storeStub{}
	dp := NewDispatcher(store, nil, nil, nil, nil)

	dp.Dispatch(context.Background(), Delivery{
		Event:      EventTaskUpdated,
		Channels:   []Channel{ChannelDatabase, ChannelBroadcast},
		Recipients: []uint{1, 3},
		Subject:    "Task updated: Ship it",
		Payload:    map[string]any{"task_id": 10},
		Lines:      []string{"uma updated the task \"Ship it\"."},
	})

	require.Len(t, store.created, 2)
	assert.Equal(t, uint(1), store.created[0].UserID)
	assert.Equal(t, uint(3), store.created[1].UserID)
	assert.Equal(t, "task.updated", store.created[0].Type)

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(store.created[0].Payload), &env))
	assert.Equal(t, EventTaskUpdated, env.Event)
	assert.Equal(t, "Task updated: Ship it", env.Subject)
}

func TestDispatcher_PublishesBroadcastChannel(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	notifier := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	received := make(chan string, 1)
	require.NoError(t, notifier.StartPatternSubscriber(ctx, func(channel, payload string) {
		received <- channel
	}))

	dp := NewDispatcher(nil, nil, notifier, nil, nil)
	dp.Dispatch(ctx, Delivery{
		Event:      EventTaskAssigned,
		Channels:   []Channel{ChannelBroadcast},
		Recipients: []uint{42},
		Subject:    "New task assigned: x",
	})

	select {
	case channel := <-received:
		assert.Equal(t, "notifications:user:42", channel)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestDispatcher_SendsMailToResolvedRecipient(t *testing.T) {
	t.Parallel()

	mailer := &mailerStub{configured: true, sent: make(chan string, 1)}
	users := &directoryStub{users: map[uint]*models.User{
		7: {ID: 7, Username: "pat", Email: "pat@example.com"},
	}}
	dp := NewDispatcher(nil, users, nil, mailer, nil)

	dp.Dispatch(context.Background(), Delivery{
		Event:      EventProjectInvitation,
		Channels:   []Channel{ChannelMail},
		Recipients: []uint{7},
		Subject:    "Invitation to project: Apollo",
	})

	select {
	case got := <-mailer.sent:
		assert.Equal(t, "pat@example.com|Invitation to project: Apollo", got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mail")
	}
}

func TestDispatcher_SkipsMailWhenUnconfigured(t *testing.T) {
	t.Parallel()

	mailer := &mailerStub{configured: false, sent: make(chan string, 1)}
	users := &directoryStub{users: map[uint]*models.User{7: {ID: 7, Email: "pat@example.com"}}}
	dp := NewDispatcher(nil, users, nil, mailer, nil)

	dp.Dispatch(context.Background(), Delivery{
		Event:      EventProjectInvitation,
		Channels:   []Channel{ChannelMail},
		Recipients: []uint{7},
	})

	select {
	case <-mailer.sent:
		t.Fatal("mail must not be sent when mailer is unconfigured")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDispatcher_NoRecipientsIsNoop(t *testing.T) {
	t.Parallel()

	store := &storeStub{}
	dp := NewDispatcher(store, nil, nil, nil, nil)
	dp.Dispatch(context.Background(), Delivery{
		Event:    EventTaskAssigned,
		Channels: []Channel{ChannelDatabase},
	})
	assert.Empty(t, store.created)
}
