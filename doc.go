// Package mvc is the root of a small model layer for interactive Go programs.
//
// The repository is organised as:
//
//   - mvc: the keyed model Registry, the Model base contract, Trackable
//     values and the Binder that mirrors them into display elements
//   - inspect: YAML snapshot, patch and reset of a live registry
//   - examples/arena: a worked set of models plus a runnable demo
//   - cmd/mvcinspect: command line front end for the inspector
//
// The goal is to keep model wiring explicit: models are created in a known
// order, find their siblings through the registry, and release what they hold
// when the registry lets go of them. There is no global state.
//
// Start with the mvc package documentation and examples/arena/main.
package mvc
