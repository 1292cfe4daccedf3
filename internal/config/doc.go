// Package config defines the format-agnostic representation of node
// declarations, decoupling the graph engine from any particular authoring
// format (HCL today, possibly others later).
package config
