// Package assets implements the deferred asset queue: extensions declare
// scripts and styles during their one-time init, and the queue drains each
// audience's registrations into host enqueues when the host fires the
// matching flush hook later in the request.
package assets
