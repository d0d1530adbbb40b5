// Package inspect is the debugging surface of a model registry.
//
// It needs nothing from the registry beyond enumeration, lookup and reset:
// Snapshot/Write render every live model and its exported fields as YAML,
// Apply writes edited field values back onto live models, and Clear destroys
// everything. When there is no registry, or the application is not running,
// the report carries a warning or info message instead of model data.
package inspect
