// Package config loads the settings of the mvcinspect command.
//
// Values come from defaults, an optional YAML file named by MVC_CONFIG, and
// MVC_-prefixed environment variables, in increasing order of precedence.
package config
