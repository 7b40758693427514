// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface implemented by each input
// format.
//
// The `config.Model` is the single source of truth for the `graph` package.
// Concrete loaders live in separate packages: `hcl` for hand-written reactor
// files and `rdgen` for generated YAML task sets.
package config
