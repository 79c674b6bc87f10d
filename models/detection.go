package models

// EdgeDetectionRequest is the body of POST /v1/detect/edges.
// Pointer fields let the handler tell a missing field from a zero value.
type EdgeDetectionRequest struct {
	Pixels    []RGB    `json:"pixels"`
	Width     *int     `json:"width"`
	Height    *int     `json:"height"`
	Threshold *float64 `json:"threshold"`
}

type EdgeDetectionResponse struct {
	Success       bool     `json:"success"`
	Bands         []Band   `json:"bands"`
	DetectedBands []string `json:"detected_bands"`
	ResistorValue *string  `json:"resistor_value"`
}

// ColorExtractionRequest is the body of POST /v1/detect/colors
type ColorExtractionRequest struct {
	Pixels     []PositionedRGB `json:"pixels"`
	ColorCount int             `json:"colorCount"`
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
}

type ColorExtractionResponse struct {
	Colors        []QuantizedColor `json:"colors"`
	TotalPixels   int              `json:"totalPixels"`
	DetectedBands []string         `json:"detected_bands"`
	ResistorValue *string          `json:"resistor_value"`
}

// LearnColorRequest is the body of POST /v1/learn/color
type LearnColorRequest struct {
	DetectedColor    *RGB   `json:"detectedColor"`
	CorrectColorName string `json:"correctColorName"`
}

// LearnValueRequest is the body of POST /v1/learn/value
type LearnValueRequest struct {
	DetectedBands    []string `json:"detectedBands"`
	CorrectValue     string   `json:"correctValue"`
	CorrectTolerance string   `json:"correctTolerance,omitempty"`
}

// BandMismatch marks a position where the detected band differs from the expected one.
// Empty Detected or Expected means the sequence was shorter at that position.
type BandMismatch struct {
	Index    int    `json:"index"`
	Detected string `json:"detected"`
	Expected string `json:"expected"`
}

type LearnValueResponse struct {
	DetectedBands []string       `json:"detectedBands"`
	CorrectBands  []string       `json:"correctBands"`
	CorrectValue  string         `json:"correctValue"`
	Ohms          float64        `json:"ohms"`
	Matches       bool           `json:"matches"`
	Mismatches    []BandMismatch `json:"mismatches"`
}

// CatalogEntry is the public view of one reference color
type CatalogEntry struct {
	Name       string   `json:"name"`
	RGB        RGB      `json:"rgb"`
	Hex        string   `json:"hex"`
	Role       string   `json:"role"`
	Value      *int     `json:"value,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
	Tolerance  *float64 `json:"tolerance,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
}
