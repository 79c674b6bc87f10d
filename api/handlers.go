package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/resistor-color/api/models"
	"github.com/resistor-color/api/resistor"
)

// pixel payloads for a cropped resistor photo stay well below this
const maxBodyBytes = 32 << 20

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Resistor Color API")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// customColors loads the learned colors for one request
func (app *Application) customColors(r *http.Request) ([]models.CustomColor, error) {
	if app.CustomColorRepo == nil {
		return nil, nil
	}
	return app.CustomColorRepo.GetAll(r.Context())
}

// decode strips the body from names and decodes the rest, recording the outcome
func (app *Application) decode(names []string) ([]string, *string) {
	stripped, value, err := app.catalog().DecodeBands(names)
	switch {
	case err == nil:
		app.Metrics.observeDecode("ok")
	case errors.Is(err, resistor.ErrTooFewBands):
		app.Metrics.observeDecode("too_few")
	default:
		app.Metrics.observeDecode("invalid")
	}
	return stripped, value
}

func validatePixels(pixels []models.RGB) error {
	if len(pixels) == 0 {
		return errors.New("pixels are required")
	}
	for i, p := range pixels {
		if !p.Valid() {
			return fmt.Errorf("pixel %d has a channel outside 0-255: %+v", i, p)
		}
	}
	return nil
}

// POST /v1/detect/edges
func (app *Application) detectEdges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.EdgeDetectionRequest{}
	if err := decodeJSON(w, r, req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if err := validatePixels(req.Pixels); err != nil {
		app.badRequest(w, r, err)
		return
	}
	if req.Width == nil || req.Height == nil || *req.Width <= 0 || *req.Height <= 0 {
		app.badRequest(w, r, errors.New("positive width and height are required"))
		return
	}
	if req.Threshold == nil || *req.Threshold < 0 {
		app.badRequest(w, r, errors.New("a non-negative threshold is required"))
		return
	}
	width, height := *req.Width, *req.Height
	if len(req.Pixels) != width*height {
		app.badRequest(w, r, resistor.ErrPixelCount)
		return
	}

	custom, err := app.customColors(r)
	if err != nil {
		log.Printf("error loading custom colors: %v", err)
		app.internalServerError(w, r, errors.New("custom colors unavailable"))
		return
	}

	bands, err := app.Classifier.ExtractBands(req.Pixels, width, height, *req.Threshold, custom)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	if bands == nil {
		bands = []models.Band{}
	}

	names := resistor.BandNames(bands)
	app.Metrics.observeBands(app.catalog(), names)
	detected, value := app.decode(names)

	writeJSON(w, http.StatusOK, models.EdgeDetectionResponse{
		Success:       true,
		Bands:         bands,
		DetectedBands: detected,
		ResistorValue: value,
	})
}

// POST /v1/detect/colors
func (app *Application) detectColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.ColorExtractionRequest{}
	if err := decodeJSON(w, r, req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if len(req.Pixels) == 0 {
		app.badRequest(w, r, errors.New("pixels are required"))
		return
	}
	for i, p := range req.Pixels {
		if !p.RGB.Valid() {
			app.badRequest(w, r, fmt.Errorf("pixel %d has a channel outside 0-255: %+v", i, p.RGB))
			return
		}
	}
	if req.ColorCount <= 0 {
		app.badRequest(w, r, errors.New("colorCount must be positive"))
		return
	}
	if req.Width < 0 || req.Height < 0 {
		app.badRequest(w, r, errors.New("width and height cannot be negative"))
		return
	}

	custom, err := app.customColors(r)
	if err != nil {
		log.Printf("error loading custom colors: %v", err)
		app.internalServerError(w, r, errors.New("custom colors unavailable"))
		return
	}

	result, err := app.Classifier.QuantizeColors(req.Pixels, req.ColorCount, req.Width, custom)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	detected, value := app.decode(resistor.QuantizedNames(result.Colors))

	writeJSON(w, http.StatusOK, models.ColorExtractionResponse{
		Colors:        result.Colors,
		TotalPixels:   result.TotalPixels,
		DetectedBands: detected,
		ResistorValue: value,
	})
}
