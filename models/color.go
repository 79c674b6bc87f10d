package models

import "fmt"

// RGB is an 8-bit sRGB triple as sent by the capture UI
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Valid reports whether every channel is within 0-255
func (c RGB) Valid() bool {
	return c.R >= 0 && c.R <= 255 &&
		c.G >= 0 && c.G <= 255 &&
		c.B >= 0 && c.B <= 255
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// PositionedRGB is a pixel that may carry its own scan coordinate
type PositionedRGB struct {
	RGB
	X *float64 `json:"x,omitempty"`
}

// CustomColor is a user-taught correction: "this RGB is really <Name>"
type CustomColor struct {
	Name string `json:"name"`
	RGB
}

// Band is one classified color band along the scan axis
type Band struct {
	X         int     `json:"x"`
	ColorName string  `json:"colorName"`
	RGB       RGB     `json:"rgb"`
	L         float64 `json:"l"`
	Width     int     `json:"width"`
	Chroma    float64 `json:"chroma"`
}

// QuantizedColor is one k-means cluster of the quantized-color extraction
type QuantizedColor struct {
	R        int     `json:"r"`
	G        int     `json:"g"`
	B        int     `json:"b"`
	Hex      string  `json:"hex"`
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	AvgX     float64 `json:"avgX"`
	Position float64 `json:"position"`
	IsAtEdge bool    `json:"isAtEdge"`
}
