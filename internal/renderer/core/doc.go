// Package core provides the cell, style, colour and geometry types shared
// by the renderer packages and the terminal backend.
package core
