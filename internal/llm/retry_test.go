package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

var down = &ErrProviderUnavailable{Err: errors.New("down")}

func TestRetry(t *testing.T) {
	ok := MockReply{JSON: json.RawMessage(`{"ok":true}`)}
	tests := []struct {
		name      string
		replies   []MockReply
		wantErr   any
		wantCalls int
	}{
		{"first attempt", []MockReply{ok}, nil, 1},
		{"transient then success", []MockReply{{Err: down}, ok}, nil, 2},
		{"rate limited then success", []MockReply{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, ok}, nil, 2},
		{"gives up after attempts", []MockReply{{Err: down}, {Err: down}, {Err: down}, ok}, new(*ErrProviderUnavailable), 3},
		{"truncation is final", []MockReply{{Err: &ErrMaxTokensExceeded{}}, ok}, new(*ErrMaxTokensExceeded), 1},
		{"rejection is final", []MockReply{{Err: &ErrRequestRejected{Status: 401}}, ok}, new(*ErrRequestRejected), 1},
		{"invalid retried once", []MockReply{{JSON: json.RawMessage(`{"ok":1}`)}, ok}, nil, 2},
		{"invalid twice fails", []MockReply{{JSON: json.RawMessage(`{}`)}, {JSON: json.RawMessage(`[]`)}, ok}, new(*ErrInvalidResponse), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.replies...)
			p := WithRetry(mock, fastRetry(), 0)

			c, err := p.Complete(context.Background(), Prompt{Schema: okSchema})
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(c.JSON))
			} else {
				assert.ErrorAs(t, err, tt.wantErr)
				assert.Nil(t, c)
			}
			assert.Len(t, mock.Prompts(), tt.wantCalls)
		})
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: down}, MockReply{Err: down})
	p := WithRetry(mock, RetryPolicy{Attempts: 2, BaseDelay: time.Hour, MaxDelay: time.Hour}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := p.Complete(ctx, Prompt{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, mock.Prompts(), 1)
}

func TestRetry_TimeoutBoundsWholeCall(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: down}, MockReply{Err: down})
	p := WithRetry(mock, RetryPolicy{Attempts: 2, BaseDelay: time.Hour, MaxDelay: time.Hour}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Complete(context.Background(), Prompt{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(MockReply{JSON: json.RawMessage(`{"ok":true}`)})
	_, err := WithRetry(mock, RetryPolicy{}, 0).Complete(context.Background(), Prompt{})
	require.NoError(t, err)
	assert.Equal(t, "mock", WithRetry(mock, RetryPolicy{}, 0).Model())
}

func TestRetryPolicy_Delay(t *testing.T) {
	rp := RetryPolicy{Attempts: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, rp.delay(0, down))
	assert.Equal(t, 200*time.Millisecond, rp.delay(1, down))
	assert.Equal(t, 300*time.Millisecond, rp.delay(2, down))
	assert.Equal(t, 4*time.Second, rp.delay(0, &ErrRateLimit{RetryAfter: 4 * time.Second}))

	rp.Jitter = 0.2
	for range 20 {
		d := rp.delay(0, down)
		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.LessOrEqual(t, d, 120*time.Millisecond)
	}
}
