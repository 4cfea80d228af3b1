package handlers

import (
	"app/cache"
	"app/config"
	"app/forecast"
)

var (
	forecastEngine *forecast.Engine
	forecastCache  *cache.ForecastCache
)

// Init wires the shared forecast engine and cache. Must run after the
// configuration is loaded and before any route is served.
func Init() {
	forecastEngine = forecast.NewEngine()
	forecastCache = cache.New(config.AppConfig.ForecastCacheTTL)
}
