// Package config loads the bar's YAML configuration and turns it into
// a runnable widget row.
//
// A configuration names the bar geometry, the font, and the widgets
// left to right. [Load] parses and validates a file on top of the
// built-in defaults; [Build] realizes the result as a widget tree,
// metric bindings for the bar, and poll sources on a metrics bridge.
package config
