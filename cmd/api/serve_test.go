package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"msdsapi/internal/cache"
	"msdsapi/internal/config"
	"msdsapi/internal/logger"
	"msdsapi/internal/model"
	serviceMocks "msdsapi/internal/service/mocks"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Env:              "test",
		Port:             "0",
		RequestTimeout:   5 * time.Second,
		CORSAllowOrigins: "*",
	}
}

func TestNewApp(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app, err := newApp(testConfig(), logger.Nop(), prometheus.NewRegistry(), nil, mockSvc)
	require.NoError(t, err)

	t.Run("request id and cors headers", func(t *testing.T) {
		mockSvc.On("Options", mock.Anything).Return(&model.Options{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/options", nil)
		req.Header.Set("Origin", "https://msds.example.com")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Contains(t, resp.Header.Get("Access-Control-Expose-Headers"), "Content-Disposition")
		mockSvc.AssertExpectations(t)
	})

	t.Run("handlers see a deadline", func(t *testing.T) {
		mockSvc.On("GetDocument", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), "M0001").Return(&model.DocumentDetail{Document: model.Document{ID: "M0001"}}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0001", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown route uses the error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestNewApp_MetricsRegisteredOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := newApp(testConfig(), logger.Nop(), reg, nil, new(serviceMocks.MockCatalogService))
	require.NoError(t, err)

	_, err = newApp(testConfig(), logger.Nop(), reg, nil, new(serviceMocks.MockCatalogService))
	assert.ErrorContains(t, err, "register metrics")
}

func TestOpenOptionsCache(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without address", func(t *testing.T) {
		c := openOptionsCache(ctx, config.RedisConfig{}, logger.Nop())
		assert.IsType(t, cache.Nop{}, c)
	})
}

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd(testConfig())

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.NotNil(t, cmd.RunE)

	migrate, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.NotNil(t, migrate.Flags().Lookup("force"))
}
