// Package projectcfg loads gantry project configuration from XML.
//
// A project file declares dashboard plugin links and build-values export
// tasks. Parsing is strict about required attributes and lenient about
// unknown elements, so project files can carry sections gantry does not
// read.
package projectcfg
