package handlers

import (
	"context"
	"errors"
	"testing"

	"app/forecast"

	"github.com/stretchr/testify/assert"
)

func TestCollectForecastsSkipsVanishedProducts(t *testing.T) {
	get := func(_ context.Context, id string) (forecast.Result, error) {
		// p2 was deleted between the id listing and the lookup
		if id == "p2" {
			return forecast.Result{}, errProductNotFound
		}
		return forecast.Result{ProductID: id}, nil
	}

	results, err := collectForecasts(context.Background(), []string{"p1", "p2", "p3"}, get)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "p1", results[0].ProductID)
	assert.Equal(t, "p3", results[1].ProductID)
}

func TestCollectForecastsPropagatesOtherErrors(t *testing.T) {
	dbErr := errors.New("connection reset")
	get := func(_ context.Context, id string) (forecast.Result, error) {
		return forecast.Result{}, dbErr
	}

	_, err := collectForecasts(context.Background(), []string{"p1"}, get)
	assert.ErrorIs(t, err, dbErr)
}
