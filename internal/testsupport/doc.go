// Package testsupport holds shared fixtures for package tests: temp-rooted
// configs, stub executables, history stores and file helpers.
package testsupport
