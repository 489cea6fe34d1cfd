package handlers_test

import (
	"context"
	"errors"

	"github.com/serroba/shortlink-demo/internal/shortener"
)

var errMock = errors.New("mock store error")

// mockStore is a hand-rolled shortener.Repository with per-method error knobs.
type mockStore struct {
	saveErr         error
	getByCodeErr    error
	listErr         error
	incrementErr    error
	containsErr     error
	record          *shortener.ShortURL
	incrementResult int64
}

func (m *mockStore) Save(_ context.Context, _ *shortener.ShortURL) error {
	return m.saveErr
}

func (m *mockStore) GetByCode(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	if m.getByCodeErr != nil {
		return nil, m.getByCodeErr
	}

	return m.record, nil
}

func (m *mockStore) List(_ context.Context) ([]*shortener.ShortURL, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	if m.record == nil {
		return nil, nil
	}

	return []*shortener.ShortURL{m.record}, nil
}

func (m *mockStore) IncrementClicks(_ context.Context, _ shortener.Code) (int64, error) {
	if m.incrementErr != nil {
		return 0, m.incrementErr
	}

	return m.incrementResult, nil
}

func (m *mockStore) Contains(_ context.Context, _ shortener.Code) (bool, error) {
	if m.containsErr != nil {
		return false, m.containsErr
	}

	return false, nil
}
