// Package plug implements the lifecycle bootstrap: the guarded, one-time
// transition that takes an extension from not-plugged to plugged by running
// the version gate, registering its autoloader, constructing its singleton,
// and wiring its flush and settings callbacks into the host dispatcher.
package plug
