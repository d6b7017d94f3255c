// Package template defines the renderer seam the expansion engine depends on.
// Concrete engines live in subpackages; pongo is the default.
package template
