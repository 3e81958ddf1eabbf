// Package mockstorage provides a testify-based mock of the key/value
// backend, used to simulate storage failures in tests.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// StorageMock implements the key/value backend contract.
type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *StorageMock) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *StorageMock) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping mocks the health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
