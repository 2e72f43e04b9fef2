package handler

import (
	"net/http"
	"turfbook/config"
	"turfbook/di"
	"turfbook/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	app := di.InitializeService()
	app.HTTP.ServeHTTP(w, r)
}
