package service

import (
	"context"
	"testing"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_UnknownNamesFallBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.notifications.Notify(ctx, "EMP404", "MGR404", 7, "hello")
	require.NoError(t, err, "unresolved names never fail the call")

	assert.Equal(t, int64(1), n.ID)
	assert.Equal(t, domain.UnknownName, n.EmployeeName)
	assert.Equal(t, domain.UnknownName, n.ManagerName)
	assert.Equal(t, int64(7), n.TaskID)
	assert.False(t, n.IsRead)

	known, err := f.notifications.Notify(ctx, "EMP001", "MGR002", 7, "hello again")
	require.NoError(t, err)
	assert.Equal(t, int64(2), known.ID)
	assert.Equal(t, "Aniket Baral", known.EmployeeName)
	assert.Equal(t, "Sunita Reddy", known.ManagerName)
}

func TestNotificationLifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	var ids []int64
	for _, msg := range []string{"one", "two", "three"} {
		n, err := f.notifications.Notify(ctx, "EMP003", "MGR001", 1, msg)
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	_, err := f.notifications.Notify(ctx, "EMP004", "MGR001", 1, "other")
	require.NoError(t, err)

	require.NoError(t, f.notifications.MarkRead(ctx, ids[0]))

	inbox, err := f.notifications.ListForEmployee(ctx, "EMP003", false)
	require.NoError(t, err)
	assert.Equal(t, "EMP003", inbox.Employee.ID)
	assert.Equal(t, NotificationStats{Total: 3, Unread: 2, Read: 1}, inbox.Stats)
	require.Len(t, inbox.Notifications, 3)
	assert.Equal(t, "three", inbox.Notifications[0].Message, "newest first")

	unread, err := f.notifications.ListForEmployee(ctx, "EMP003", true)
	require.NoError(t, err)
	assert.True(t, unread.UnreadOnly)
	assert.Len(t, unread.Notifications, 2)
	assert.Equal(t, 3, unread.Stats.Total, "stats cover the whole inbox")

	marked, err := f.notifications.MarkAllRead(ctx, "EMP003")
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	marked, err = f.notifications.MarkAllRead(ctx, "EMP003")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)

	all, stats, err := f.notifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, NotificationStats{Total: 4, Unread: 1, Read: 3}, stats)

	require.NoError(t, f.notifications.Delete(ctx, ids[1]))
	_, err = f.notifications.Get(ctx, ids[1])
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.ErrorIs(t, f.notifications.Delete(ctx, ids[1]), ErrNotificationNotFound)
	assert.ErrorIs(t, f.notifications.MarkRead(ctx, 999), ErrNotificationNotFound)

	got, err := f.notifications.Get(ctx, ids[2])
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}

func TestNotifications_UnknownEmployee(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.notifications.ListForEmployee(ctx, "EMP404", false)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = f.notifications.MarkAllRead(ctx, "EMP404")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
