package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []models.MailMessage
	err   error
	block chan struct{}
}

func (m *recordingMailer) Send(_ context.Context, msg models.MailMessage) error {
	if m.block != nil {
		<-m.block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *recordingMailer) Sent() []models.MailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.MailMessage(nil), m.sent...)
}

func TestMailDispatcher_DeliversQueuedMessages(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewMailDispatcher(mailer, 10, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Run(ctx)

	require.True(t, d.Notify(ctx, models.MailMessage{To: "a@example.com"}))
	require.True(t, d.Notify(ctx, models.MailMessage{To: "b@example.com"}))

	assert.Eventually(t, func() bool { return len(mailer.Sent()) == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	d.Wait()

	sent := mailer.Sent()
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "b@example.com", sent[1].To)
}

func TestMailDispatcher_DropsWhenFull(t *testing.T) {
	d := NewMailDispatcher(&recordingMailer{}, 1, logger.Nop())

	// not running, so the queue never drains
	assert.True(t, d.Notify(context.Background(), models.MailMessage{To: "a@example.com"}))
	assert.False(t, d.Notify(context.Background(), models.MailMessage{To: "b@example.com"}))
}

func TestMailDispatcher_DrainsOnShutdown(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewMailDispatcher(mailer, 5, logger.Nop())

	d.Notify(context.Background(), models.MailMessage{To: "a@example.com"})
	d.Notify(context.Background(), models.MailMessage{To: "b@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Run(ctx)
	d.Wait()

	assert.Len(t, mailer.Sent(), 2)
}

func TestMailDispatcher_SendErrorDoesNotStopLoop(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("relay down")}
	d := NewMailDispatcher(mailer, 5, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Run(ctx)

	d.Notify(ctx, models.MailMessage{To: "a@example.com"})
	d.Notify(ctx, models.MailMessage{To: "b@example.com"})

	assert.Eventually(t, func() bool { return len(mailer.Sent()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestMailDispatcher_RunTwiceStartsOneLoop(t *testing.T) {
	d := NewMailDispatcher(&recordingMailer{}, 1, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Run(ctx)
	d.Run(ctx)
	cancel()

	// a second loop would panic closing done twice
	d.Wait()
}

func TestNewMailDispatcher_MinimumQueue(t *testing.T) {
	d := NewMailDispatcher(&recordingMailer{}, 0, logger.Nop())
	assert.Equal(t, 1, cap(d.queue))
}
