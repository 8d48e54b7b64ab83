package factory

import (
	"time"

	"github.com/miikama/game-lobby-REST-backend/internal/dependencies/mocks"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
	"github.com/miikama/game-lobby-REST-backend/internal/storage/memory"
	"github.com/miikama/game-lobby-REST-backend/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App over in-memory storage with a mocked clock
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates a test App over the given storage
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	return &TestApp{
		App:       newWithDependencies(store, mockClock, testutil.NopLogger()),
		MockClock: mockClock,
	}
}
