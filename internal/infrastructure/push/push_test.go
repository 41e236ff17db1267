package push

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

type fakeMessaging struct {
	got *messaging.Message
	id  string
	err error
}

func (f *fakeMessaging) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.got = m
	return f.id, f.err
}

func newTestSender(f *fakeMessaging) *FCMSender {
	return &FCMSender{client: f, timeout: time.Second, log: helpers.OrNop(nil)}
}

func TestFCMSender_Send(t *testing.T) {
	f := &fakeMessaging{id: "projects/p/messages/1"}
	res := newTestSender(f).Send(context.Background(), Message{Token: "tok", Title: "T", Body: "B", Data: map[string]string{"k": "v"}})

	require.NoError(t, res.Err)
	assert.Equal(t, "projects/p/messages/1", res.MessageID)
	assert.Equal(t, "tok", f.got.Token)
	assert.Equal(t, "T", f.got.Notification.Title)
	assert.Equal(t, "v", f.got.Data["k"])
}

func TestFCMSender_FailureIsClassified(t *testing.T) {
	res := newTestSender(&fakeMessaging{err: errors.New("boom")}).Send(context.Background(), Message{Token: "tok"})
	assert.Equal(t, errs.CodePushSendFailed, errs.CodeOf(res.Err))
	assert.Empty(t, res.MessageID)
	assert.False(t, res.Unregistered)
}

func TestSendAsync_DeliversOneResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := newTestSender(&fakeMessaging{id: "m1"}).SendAsync(ctx, Message{Token: "tok"})
	cancel()

	select {
	case res := <-ch:
		assert.Equal(t, "m1", res.MessageID)
	case <-time.After(2 * time.Second):
		t.Fatal("no result")
	}
	_, open := <-ch
	assert.False(t, open)
}

func TestLogSender(t *testing.T) {
	res := NewLogSender(nil).Send(context.Background(), Message{Token: "tok"})
	require.NoError(t, res.Err)
	assert.Contains(t, res.MessageID, "local-")
}
