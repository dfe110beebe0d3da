// Package ui provides the desktop surface of NordVPN Indicator.
// This file contains icon generation utilities for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"nordvpn-indicator/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	AccentColor color.RGBA
	SymbolColor color.RGBA
	Symbol      IconSymbol
}

// IconSymbol selects the glyph drawn inside the shield.
type IconSymbol int

const (
	SymbolCheckmark IconSymbol = iota
	SymbolCross
	SymbolDots
)

// ConnectedIconConfig returns the icon config for the connected state.
func ConnectedIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{21, 101, 192, 255},  // NordVPN blue
		BorderColor: color.RGBA{66, 165, 245, 255},  // Light blue
		AccentColor: color.RGBA{187, 222, 251, 255}, // Pale blue
		SymbolColor: color.RGBA{255, 255, 255, 255},
		Symbol:      SymbolCheckmark,
	}
}

// DisconnectedIconConfig returns the icon config for the disconnected state.
func DisconnectedIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{97, 97, 97, 255},
		BorderColor: color.RGBA{158, 158, 158, 255},
		AccentColor: color.RGBA{189, 189, 189, 255},
		SymbolColor: color.RGBA{255, 255, 255, 255},
		Symbol:      SymbolCross,
	}
}

// WaitingIconConfig returns the icon config for the waiting state:
// connecting, warnings pending, or status not yet known.
func WaitingIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{245, 127, 23, 255},  // Amber
		BorderColor: color.RGBA{255, 179, 0, 255},   // Light amber
		AccentColor: color.RGBA{255, 224, 130, 255}, // Pale amber
		SymbolColor: color.RGBA{255, 255, 255, 255},
		Symbol:      SymbolDots,
	}
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawShield(img)

	switch g.config.Symbol {
	case SymbolCheckmark:
		g.drawCheckmark(img)
	case SymbolCross:
		g.drawCross(img)
	case SymbolDots:
		g.drawDots(img)
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawShield draws the shield shape on the image.
func (g *IconGenerator) drawShield(img *image.RGBA) {
	size := g.config.Size
	centerX := float64(size) / 2
	topY := 1.0
	bottomY := float64(size) - 2
	shieldWidth := float64(size) - 4

	isInShield := func(x, y float64) bool {
		relY := (y - topY) / (bottomY - topY)
		if relY < 0 || relY > 1 {
			return false
		}

		var halfWidth float64
		if relY < 0.5 {
			halfWidth = shieldWidth/2 - relY*0.5
		} else {
			progress := (relY - 0.5) * 2
			halfWidth = (shieldWidth/2 - 0.25) * (1 - progress*progress)
		}

		return x >= centerX-halfWidth && x <= centerX+halfWidth
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5

			if isInShield(fx, fy) {
				isBorder := !isInShield(fx-1, fy) || !isInShield(fx+1, fy) ||
					!isInShield(fx, fy-1) || !isInShield(fx, fy+1)

				if isBorder {
					img.Set(x, y, g.config.BorderColor)
				} else {
					relY := float64(y) / float64(size)
					if relY < 0.3 {
						img.Set(x, y, g.config.AccentColor)
					} else {
						img.Set(x, y, g.config.FillColor)
					}
				}
			}
		}
	}
}

// drawCheckmark draws a checkmark symbol on the image.
func (g *IconGenerator) drawCheckmark(img *image.RGBA) {
	points := []struct{ x, y int }{
		{6, 11}, {7, 11}, {7, 12}, {8, 12}, {8, 13}, {9, 13},
		{9, 12}, {10, 12}, {10, 11}, {11, 11}, {11, 10}, {12, 10},
		{12, 9}, {13, 9}, {13, 8}, {14, 8},
	}
	g.drawPoints(img, points)
}

// drawCross draws a small x symbol on the image.
func (g *IconGenerator) drawCross(img *image.RGBA) {
	points := []struct{ x, y int }{
		{8, 8}, {9, 9}, {10, 10}, {11, 11}, {12, 12}, {13, 13},
		{13, 8}, {12, 9}, {10, 12}, {9, 13}, {8, 13}, {13, 8},
		{11, 10}, {8, 13},
	}
	g.drawPoints(img, points)
}

// drawDots draws three pending dots on the image.
func (g *IconGenerator) drawDots(img *image.RGBA) {
	points := []struct{ x, y int }{
		{7, 11}, {8, 11},
		{10, 11}, {11, 11},
		{13, 11}, {14, 11},
	}
	g.drawPoints(img, points)
}

func (g *IconGenerator) drawPoints(img *image.RGBA, points []struct{ x, y int }) {
	for _, p := range points {
		if p.x >= 0 && p.x < g.config.Size && p.y >= 0 && p.y < g.config.Size {
			img.Set(p.x, p.y, g.config.SymbolColor)
		}
	}
}

// GenerateConnectedIcon generates the connected state icon.
func GenerateConnectedIcon() []byte {
	return NewIconGenerator(ConnectedIconConfig()).Generate()
}

// GenerateDisconnectedIcon generates the disconnected state icon.
func GenerateDisconnectedIcon() []byte {
	return NewIconGenerator(DisconnectedIconConfig()).Generate()
}

// GenerateWaitingIcon generates the waiting state icon.
func GenerateWaitingIcon() []byte {
	return NewIconGenerator(WaitingIconConfig()).Generate()
}
