// Package testsupport holds helpers shared by tests: a config builder and an
// in-memory Radarr server.
package testsupport
