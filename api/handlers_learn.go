package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/resistor-color/api/datastore"
	"github.com/resistor-color/api/models"
	"github.com/resistor-color/api/resistor"
)

// POST /v1/learn/color
func (app *Application) learnColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.LearnColorRequest{}
	if err := decodeJSON(w, r, req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if req.DetectedColor == nil {
		app.badRequest(w, r, errors.New("detectedColor is required"))
		return
	}
	if !req.DetectedColor.Valid() {
		app.badRequest(w, r, fmt.Errorf("detectedColor has a channel outside 0-255: %+v", *req.DetectedColor))
		return
	}
	name := strings.TrimSpace(req.CorrectColorName)
	if name == "" {
		app.badRequest(w, r, errors.New("correctColorName is required"))
		return
	}
	if app.CustomColorRepo == nil {
		app.serviceUnavailable(w, r, datastore.ErrNoStore)
		return
	}

	color := models.CustomColor{Name: app.catalog().Canonical(name), RGB: *req.DetectedColor}
	stored, updated, err := app.CustomColorRepo.Learn(r.Context(), color)
	if errors.Is(err, datastore.ErrNoStore) {
		app.serviceUnavailable(w, r, err)
		return
	}
	if err != nil {
		log.Printf("error learning color %s at %v: %v", color.Name, color.RGB, err)
		app.internalServerError(w, r, errors.New("failed to store custom color"))
		return
	}

	app.Metrics.observeLearned()
	log.Printf("learned %s for %s (updated: %v)", stored.Name, stored.RGB.Hex(), updated)
	writeJSON(w, http.StatusOK, stored)
}

// POST /v1/learn/value
func (app *Application) learnValue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.LearnValueRequest{}
	if err := decodeJSON(w, r, req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if strings.TrimSpace(req.CorrectValue) == "" {
		app.badRequest(w, r, errors.New("correctValue is required"))
		return
	}
	if req.CorrectTolerance != "" && !resistor.ValidToleranceCode(req.CorrectTolerance) {
		app.badRequest(w, r, fmt.Errorf("unknown tolerance %q, use one of %s", req.CorrectTolerance, strings.Join(resistor.ToleranceCodes(), ", ")))
		return
	}

	ohms, err := resistor.ParseResistance(req.CorrectValue)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	correct, err := app.catalog().ResistanceToColors(ohms, req.CorrectTolerance)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	value, err := app.catalog().CalculateResistorValue(correct)
	if err != nil {
		value = resistor.FormatResistance(ohms)
	}

	detected := req.DetectedBands
	if detected == nil {
		detected = []string{}
	}
	mismatches := compareBands(app.catalog(), detected, correct)

	writeJSON(w, http.StatusOK, models.LearnValueResponse{
		DetectedBands: detected,
		CorrectBands:  correct,
		CorrectValue:  value,
		Ohms:          ohms,
		Matches:       len(mismatches) == 0,
		Mismatches:    mismatches,
	})
}

// compareBands lists the positions where detected and expected disagree after canonicalizing names
func compareBands(cat *resistor.Catalog, detected, expected []string) []models.BandMismatch {
	n := max(len(detected), len(expected))
	mismatches := []models.BandMismatch{}
	for i := 0; i < n; i++ {
		var got, want string
		if i < len(detected) {
			got = cat.Canonical(strings.TrimSpace(detected[i]))
		}
		if i < len(expected) {
			want = expected[i]
		}
		if got != want {
			mismatches = append(mismatches, models.BandMismatch{Index: i, Detected: got, Expected: want})
		}
	}
	return mismatches
}

// GET /v1/colors/catalog
func (app *Application) getCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	writeJSON(w, http.StatusOK, app.catalog().CatalogEntries())
}

// GET /v1/colors/custom
func (app *Application) getCustomColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	colors, err := app.customColors(r)
	if err != nil {
		log.Printf("error loading custom colors: %v", err)
		app.internalServerError(w, r, errors.New("custom colors unavailable"))
		return
	}
	if colors == nil {
		colors = []models.CustomColor{}
	}
	writeJSON(w, http.StatusOK, colors)
}
