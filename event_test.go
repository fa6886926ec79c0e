package logbase

import (
	"testing"
	"time"

	smerrors "github.com/Station-Manager/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Msg(t *testing.T) {
	r := newRecorder(t)

	err := r.At(LevelWarn).
		Str("operation", "database").
		Int("attempt", 3).
		Bool("retry", true).
		Dur("elapsed", time.Second).
		Strs("tags", []string{"a", "b"}).
		Fields(Fields{"user_id": "u-1"}).
		Dict("request", func(e *Event) { e.Str("method", "GET").Int64("bytes", 10) }).
		Msg("query slow")
	require.NoError(t, err)

	require.Len(t, r.records, 1)
	assert.Equal(t, []string{LevelWarn}, r.levels)
	assert.Equal(t, "query slow", r.records[0].Message())
	assert.Equal(t, Fields{
		"operation": "database",
		"attempt":   3,
		"retry":     true,
		"elapsed":   time.Second,
		"tags":      []string{"a", "b"},
		"user_id":   "u-1",
		"request":   Fields{"method": "GET", "bytes": int64(10)},
	}, r.records[0].Fields())
}

func TestEvent_DisabledLevelIsInert(t *testing.T) {
	r := newRecorder(t, WithLevels(LevelString("error")))

	e := r.At(LevelDebug)
	assert.False(t, e.Enabled())
	assert.NoError(t, e.Str("k", "v").Any("x", 1).Msgf("hello %s", "world"))
	assert.Empty(t, r.records)

	var nilProcessor *Processor
	assert.NoError(t, nilProcessor.At(LevelError).Send())
}

func TestEvent_Err(t *testing.T) {
	r := newRecorder(t)

	inner := smerrors.New("db.Connect").Msg("connection refused")
	outer := smerrors.New("server.Start").Err(inner).Msg("startup failed")

	require.NoError(t, r.At(LevelError).Err(outer).Err(nil).Msgf("boom %d", 1))

	fields := r.records[0].Fields()
	assert.Equal(t, "boom 1", r.records[0].Message())
	assert.Equal(t, "startup failed", fields["error"])
	assert.NotEmpty(t, fields[StackKey])
	assert.Equal(t, "connection refused", fields["error_root"])
	assert.Equal(t, "db.Connect", fields["error_root_op"])
}

func TestEvent_SendWithoutSender(t *testing.T) {
	var p Processor
	assert.ErrorIs(t, p.At(LevelInfo).Send(), ErrSendNotImplemented)
}
