// Package engine expands custom template tags inside HTML documents.
//
// An expansion runs passes over the document until a pass rewrites nothing.
// Each pass walks the registry in registration order; for every tag it renders
// each occurrence's template with the occurrence's attributes and inner markup,
// forwards the remaining attributes onto the rendered root and swaps the
// occurrence for the result. Tags that were used contribute their stylesheet
// once per document, and the collected CSS lands in a <style> element in the
// document head.
//
// Engines are safe for concurrent use as long as the configured renderer and
// preprocessor are.
package engine
