// Package attrs reconciles the attributes written on a tag usage with the root
// element its template renders.
//
// Forwarding follows three rules:
//
//   - when the rendered root is itself a registered template tag, every usage
//     attribute is copied across and validated later, when that tag expands;
//   - otherwise only attributes valid for the root element (element-specific,
//     global, data-*, aria-* and HTML event handlers) are copied, the rest were
//     template variables and stay out of the markup;
//   - class and id are merged (usage tokens first, then the root's own), any
//     other attribute replaces the root's value.
//
// Attributes the template author already placed, through the Helper exposed to
// templates or by interpolating the variable in the body, are skipped.
package attrs
