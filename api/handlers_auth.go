package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/resistor-color/api/models"
	"golang.org/x/crypto/bcrypt"
)

var errOperatorAuthDisabled = errors.New("operator authentication is not configured")

// POST /v1/auth/token
func (app *Application) issueOperatorToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	creds := &models.OperatorLoginRequest{}
	if err := decodeJSON(w, r, creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if app.Config.OperatorPasswordHash == "" {
		app.serviceUnavailable(w, r, errOperatorAuthDisabled)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(app.Config.OperatorPasswordHash), []byte(creds.Password)); err != nil {
		app.invalidCredentials(w, r, errors.New("invalid operator password"))
		return
	}

	accessExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration))
	sessionID := uuid.New().String()
	token, err := models.NewOperatorToken(app.Config.JwtSecret, sessionID, accessExpiry)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.JWT.ACCESS_COOKIE_NAME,
		Value:    token,
		HttpOnly: true,
		Secure:   !app.Config.DevMode,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Expires:  accessExpiry,
	})

	log.Printf("issued operator session %s until %s", sessionID, accessExpiry.Format(time.RFC3339))
	writeJSON(w, http.StatusOK, models.OperatorTokenResponse{Token: token, Expiry: accessExpiry})
}
