package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	mockUsecase "numatu/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweeper_SweepsUntilStopped(t *testing.T) {
	collections := mockUsecase.NewMockCollectionUsecase(t)
	var calls atomic.Int32
	collections.EXPECT().ExpireOverdue(mock.Anything).
		RunAndReturn(func(context.Context) (int, error) {
			if calls.Add(1) == 2 {
				return 0, errors.New("store unavailable")
			}

			return 1, nil
		})

	s := newSweeper(collections, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	done := make(chan error, 1)
	go func() { done <- s.Serve(context.Background()) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, time.Millisecond,
		"a failed sweep does not stop the loop")

	s.stop()
	s.stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_StopsWithContext(t *testing.T) {
	collections := mockUsecase.NewMockCollectionUsecase(t)
	s := newSweeper(collections, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, s.Serve(ctx))
}
