// Package render draws preview pages: a white canvas, text in the embedded Go
// fonts, cell outlines, greedy word wrapping, and the fixed-size error image
// returned in place of a page that could not be rendered.
//
// Font sizes are given in pixels, so a 16 px face draws text the same height
// regardless of the output DPI.
package render
