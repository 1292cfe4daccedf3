// Package hcl implements the config.Loader interface for HCL sheet files,
// translating `node` blocks into the format-agnostic declaration model.
package hcl
