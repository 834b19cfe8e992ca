// Package spec computes and caches the runtime descriptor of an extension:
// its identity, installation directory, public URL, and the conventional
// subdirectories it offers. Specs are resolved lazily on first access and
// memoized for the lifetime of the process.
package spec
