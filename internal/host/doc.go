// Package host declares the collaborator contracts the lifecycle core is
// written against: the hook dispatcher, asset enqueue primitive, settings
// subsystem, loader chain, and the request-context predicates. The package
// contains interfaces only; the surrounding platform provides the concrete
// implementations, and internal/inmemoryhost provides the reference one.
package host
