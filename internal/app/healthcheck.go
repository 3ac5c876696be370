package app

import (
	"net/http"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/vcs"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthcheckResponse{
		Status:      "UP",
		Environment: app.config.Env,
		Version:     vcs.Version(),
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
