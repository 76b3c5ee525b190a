// Package shared provides common utilities used across the codebase.
// It serves as a central location for functionality that doesn't belong
// to any specific domain or architectural layer.
//
// # Structure
//
// The package currently holds one component:
//
// - testutil: testing utilities, including a buffered slog handler for
// asserting on log output
//
// # Usage Guidelines
//
// This package should only contain:
//
// 1. Test utilities used by multiple packages
// 2. Generic helper functions with no domain-specific logic
//
// It should NOT contain business logic, or circular dependencies with
// other internal packages.
package shared
