// Package mocks provides testify mocks for the domain interfaces.
package mocks
