// Package tabview holds build metadata for the tabview module.
package tabview

// Version is the module release version.
const Version = "0.1.0"

// ModulePath is the import path of the module.
const ModulePath = "github.com/mesh-intelligence/tabview"
