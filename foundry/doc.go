// Package foundry re-exports the module root API under an import path
// whose last element matches the package name.
//
// Import the module root directly when the path does not matter:
// github.com/melionel/foundry-samples
package foundry
