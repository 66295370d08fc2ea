// Package migrations holds the store schema. Each file registers its steps
// with pkg/migration from init(), so importing this package for side effects
// is enough to make them available to the gateway and the CLI.
package migrations
