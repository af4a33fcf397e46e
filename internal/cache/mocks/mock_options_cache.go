package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"msdsapi/internal/model"
)

type MockOptionsCache struct {
	mock.Mock
}

func (m *MockOptionsCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOptionsCache) Get(ctx context.Context, gen int64) (*model.Options, bool, error) {
	args := m.Called(ctx, gen)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Options), args.Bool(1), args.Error(2)
}

func (m *MockOptionsCache) Set(ctx context.Context, gen int64, opts *model.Options) error {
	args := m.Called(ctx, gen, opts)
	return args.Error(0)
}

func (m *MockOptionsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOptionsCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
