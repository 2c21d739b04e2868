package controllers

import (
	"errors"
	"net/http"
	"swiperank/internal/models"
	"swiperank/internal/providers"
	"swiperank/internal/services"
)

type ProfileController struct {
	logger   providers.Logger
	profiles services.ProfileServiceInterface
}

func NewProfileController(logger providers.Logger, profiles services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{logger: logger, profiles: profiles}
}

// Get responds with the stored profile, or JSON null when there is none.
func (pc *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.profiles.Get(r.Context(), getUser(r)))
}

func (pc *ProfileController) Save(w http.ResponseWriter, r *http.Request) {
	var profile models.PreferenceProfile
	if !decodeBody(w, r, &profile) {
		return
	}

	saved, err := pc.profiles.Save(r.Context(), getUser(r), &profile)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		pc.logger.Errorf(providers.TypePost, "Failed to save profile: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
