// Package style compiles tag stylesheets and collects them once per tag for a
// single document expansion.
package style
