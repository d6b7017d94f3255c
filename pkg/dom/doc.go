// Package dom is the document tree used by the expansion engine. It wraps
// golang.org/x/net/html with the handful of query and mutation helpers the
// engine needs: tag lookup in document order, inner HTML capture, fragment
// parsing with a root-count check, element replacement and head/style access.
//
// Element names are compared case-insensitively because the HTML parser folds
// tag names to lower case: a usage written as <Card> is found as "card".
//
// The parser also ignores the trailing slash on anything but void elements, so
// <Icon name="x"/> opens an element that runs to the end of its parent. Run
// markup through PairSelfClosing before parsing to get <Icon name="x"></Icon>.
package dom
