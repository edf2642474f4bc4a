package inbox_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"oliveflow/internal/adapters/out/inbox"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInbox(t *testing.T) *inbox.SQLiteInbox {
	t.Helper()
	box, err := inbox.New(filepath.Join(t.TempDir(), "inbox.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = box.Close() })
	return box
}

func millEvent(t *testing.T, millID kernel.ID, subject kernel.Code, at time.Time) notification.Event {
	t.Helper()
	mill, err := kernel.NewMill(millID)
	require.NoError(t, err)
	event, err := notification.ServiceOfferApprovedEvent(mill, subject, at)
	require.NoError(t, err)
	return event
}

func TestSQLiteInbox_NotifyAndList(t *testing.T) {
	ctx := context.Background()
	box := openInbox(t)
	day := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, box.Notify(ctx, millEvent(t, 3, "extractionoffer-20241105-000001", day)))
	require.NoError(t, box.Notify(ctx, millEvent(t, 3, "extractionoffer-20241106-000002", day.Add(time.Hour))))
	require.NoError(t, box.Notify(ctx, millEvent(t, 4, "extractionoffer-20241106-000003", day)))

	messages, err := box.List(ctx, "mill:3", 10)

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "extractionoffer-20241106-000002", messages[0].Subject)
	assert.Equal(t, notification.ServiceOfferApproved, messages[0].Kind)
	assert.Equal(t, "mill:3", messages[0].Recipient)
	assert.NotEmpty(t, messages[0].Text)
	assert.True(t, messages[1].OccurredAt.Equal(day))
}

func TestSQLiteInbox_DuplicateDeliveryIsDropped(t *testing.T) {
	ctx := context.Background()
	box := openInbox(t)
	event := millEvent(t, 3, "extractionoffer-20241105-000001", time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC))

	require.NoError(t, box.Notify(ctx, event))
	require.NoError(t, box.Notify(ctx, event))

	messages, err := box.List(ctx, "mill:3", 10)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSQLiteInbox_Limit(t *testing.T) {
	ctx := context.Background()
	box := openInbox(t)
	day := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
	for i := range 5 {
		require.NoError(t, box.Notify(ctx, millEvent(t, 3, "extractionoffer-20241105-000001", day.Add(time.Duration(i)*time.Minute))))
	}

	messages, err := box.List(ctx, "mill:3", 2)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	_, err = box.List(ctx, "mill:3", 0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	_, err = box.List(ctx, "", 5)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSQLiteInbox_RejectsUnbuiltEvent(t *testing.T) {
	box := openInbox(t)

	err := box.Notify(context.Background(), notification.Event{})

	assert.ErrorIs(t, err, notification.ErrEventIsNotConstructed)
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := inbox.New("", slog.Default())

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
