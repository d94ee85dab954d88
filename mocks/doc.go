// Package mocks holds testify mocks for the service interfaces, in mockery's layout.
package mocks
