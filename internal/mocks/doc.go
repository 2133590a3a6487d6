// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be reused across test packages. Each mock
// exposes optional function fields (XxxFn) for custom behavior and falls
// back to simple default-value fields when no function is set.
package mocks
