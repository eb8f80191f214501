package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mouse-blink/nodecov/internal/adapter"
	adaptermocks "github.com/mouse-blink/nodecov/internal/adapter/mocks"
	m "github.com/mouse-blink/nodecov/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCollector_Collect(t *testing.T) {
	runtime := adaptermocks.NewMockRuntime(t)
	session := adaptermocks.NewMockSession(t)

	snapshot := m.CoverageSnapshot{Result: []m.CoverageRecord{
		record("1", "file:///app/index.js"),
		record("2", "file:///tmp/nodecov-loader-1.mjs"),
	}}

	mock.InOrder(
		runtime.On("Open", mock.Anything, "./index.js").Return(session, nil),
		session.On("Enable", mock.Anything).Return(nil),
		session.On("StartPreciseCoverage", mock.Anything, m.CoverageOptions{CallCount: true, Detailed: true}).Return(nil),
		session.On("Run", mock.Anything).Return(nil),
		session.On("TakePreciseCoverage", mock.Anything).Return(snapshot, nil),
		session.On("StopPreciseCoverage", mock.Anything).Return(nil),
		session.On("Self").Return(m.Path("/tmp/nodecov-loader-1.mjs")),
		session.On("OffsetUnit").Return(m.UnitUTF16),
		session.On("Close").Return(nil),
	)

	collection, err := NewCollector(runtime).Collect(context.Background(), "./index.js")
	require.NoError(t, err)

	assert.Equal(t, snapshot.Result, collection.Records)
	assert.Equal(t, m.Path("/tmp/nodecov-loader-1.mjs"), collection.Self)
	assert.Equal(t, m.UnitUTF16, collection.Unit)

	session.AssertNumberOfCalls(t, "StopPreciseCoverage", 1)
}

func TestCollector_CollectMissingEntrypoint(t *testing.T) {
	runtime := adaptermocks.NewMockRuntime(t)

	_, err := NewCollector(runtime).Collect(context.Background(), "")

	require.ErrorIs(t, err, ErrMissingEntrypoint)
	runtime.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestCollector_CollectOpenFailure(t *testing.T) {
	t.Run("runtime unavailable", func(t *testing.T) {
		runtime := adaptermocks.NewMockRuntime(t)
		runtime.EXPECT().Open(mock.Anything, "main.js").
			Return(nil, fmt.Errorf("%w: node not found", adapter.ErrRuntimeUnavailable))

		_, err := NewCollector(runtime).Collect(context.Background(), "main.js")

		var unavailable *CollectorUnavailableError
		require.True(t, errors.As(err, &unavailable))
		assert.ErrorIs(t, err, adapter.ErrRuntimeUnavailable)
	})

	t.Run("other failure", func(t *testing.T) {
		runtime := adaptermocks.NewMockRuntime(t)
		boom := errors.New("boom")
		runtime.EXPECT().Open(mock.Anything, "main.js").Return(nil, boom)

		_, err := NewCollector(runtime).Collect(context.Background(), "main.js")

		require.ErrorIs(t, err, boom)

		var unavailable *CollectorUnavailableError
		assert.False(t, errors.As(err, &unavailable))
	})
}

func TestCollector_CollectProfilerFailure(t *testing.T) {
	t.Run("enable", func(t *testing.T) {
		runtime := adaptermocks.NewMockRuntime(t)
		session := adaptermocks.NewMockSession(t)

		runtime.EXPECT().Open(mock.Anything, "main.js").Return(session, nil)
		session.EXPECT().Enable(mock.Anything).Return(errors.New("Profiler.enable: not supported"))
		session.On("Close").Return(nil).Once()

		_, err := NewCollector(runtime).Collect(context.Background(), "main.js")

		var unavailable *CollectorUnavailableError
		require.True(t, errors.As(err, &unavailable))
		session.AssertNotCalled(t, "StopPreciseCoverage", mock.Anything)
	})

	t.Run("start", func(t *testing.T) {
		runtime := adaptermocks.NewMockRuntime(t)
		session := adaptermocks.NewMockSession(t)

		runtime.EXPECT().Open(mock.Anything, "main.js").Return(session, nil)
		session.EXPECT().Enable(mock.Anything).Return(nil)
		session.On("StartPreciseCoverage", mock.Anything, mock.Anything).Return(errors.New("refused"))
		session.On("Close").Return(nil).Once()

		_, err := NewCollector(runtime).Collect(context.Background(), "main.js")

		var unavailable *CollectorUnavailableError
		require.True(t, errors.As(err, &unavailable))
		assert.Contains(t, err.Error(), "refused")
	})
}

func TestCollector_CollectEntrypointFailure(t *testing.T) {
	runtime := adaptermocks.NewMockRuntime(t)
	session := adaptermocks.NewMockSession(t)

	scriptErr := &adapter.ScriptError{Description: "Error: boom"}

	runtime.EXPECT().Open(mock.Anything, "main.js").Return(session, nil)
	session.EXPECT().Enable(mock.Anything).Return(nil)
	session.On("StartPreciseCoverage", mock.Anything, mock.Anything).Return(nil)
	session.EXPECT().Run(mock.Anything).Return(scriptErr)
	session.On("StopPreciseCoverage", mock.Anything).Return(nil).Once()
	session.On("Close").Return(errors.New("already gone")).Once()

	_, err := NewCollector(runtime).Collect(context.Background(), "main.js")

	var entryErr *EntrypointError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, "main.js", entryErr.Entrypoint)
	assert.ErrorIs(t, err, scriptErr)

	session.AssertNotCalled(t, "TakePreciseCoverage", mock.Anything)
}

func TestCollector_CollectCancelled(t *testing.T) {
	runtime := adaptermocks.NewMockRuntime(t)
	session := adaptermocks.NewMockSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runtime.EXPECT().Open(mock.Anything, "main.js").Return(session, nil)
	session.EXPECT().Enable(mock.Anything).Return(nil)
	session.On("StartPreciseCoverage", mock.Anything, mock.Anything).Return(nil)
	session.On("Run", mock.Anything).Return(context.Canceled).Run(func(mock.Arguments) { cancel() })
	session.On("StopPreciseCoverage", mock.MatchedBy(func(c context.Context) bool {
		return c.Err() == nil
	})).Return(nil).Once()
	session.On("Close").Return(nil).Once()

	_, err := NewCollector(runtime).Collect(ctx, "main.js")

	require.ErrorIs(t, err, context.Canceled)

	var entryErr *EntrypointError
	assert.False(t, errors.As(err, &entryErr))
}

func TestCollector_CollectTakeFailure(t *testing.T) {
	runtime := adaptermocks.NewMockRuntime(t)
	session := adaptermocks.NewMockSession(t)

	runtime.EXPECT().Open(mock.Anything, "main.js").Return(session, nil)
	session.EXPECT().Enable(mock.Anything).Return(nil)
	session.On("StartPreciseCoverage", mock.Anything, mock.Anything).Return(nil)
	session.EXPECT().Run(mock.Anything).Return(nil)
	session.On("TakePreciseCoverage", mock.Anything).Return(m.CoverageSnapshot{}, errors.New("gone"))
	session.On("StopPreciseCoverage", mock.Anything).Return(nil).Once()
	session.On("Close").Return(nil).Once()

	_, err := NewCollector(runtime).Collect(context.Background(), "main.js")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "take precise coverage")
}

func TestCollector_CollectCloseFailure(t *testing.T) {
	runtime := adaptermocks.NewMockRuntime(t)
	session := adaptermocks.NewMockSession(t)

	runtime.EXPECT().Open(mock.Anything, "main.js").Return(session, nil)
	session.EXPECT().Enable(mock.Anything).Return(nil)
	session.On("StartPreciseCoverage", mock.Anything, mock.Anything).Return(nil)
	session.EXPECT().Run(mock.Anything).Return(nil)
	session.On("TakePreciseCoverage", mock.Anything).Return(m.CoverageSnapshot{}, nil)
	session.On("StopPreciseCoverage", mock.Anything).Return(nil).Once()
	session.On("Self").Return(m.Path("/tmp/loader.mjs"))
	session.On("OffsetUnit").Return(m.UnitUTF16)
	session.On("Close").Return(errors.New("loader already removed")).Once()

	collection, err := NewCollector(runtime).Collect(context.Background(), "main.js")

	require.NoError(t, err)
	assert.Equal(t, m.Path("/tmp/loader.mjs"), collection.Self)
}
