// Package handler holds the function bodies: the health probe and the two
// toy endpoints. Each handler maps one invocation to one domain.Response and
// knows nothing about Lambda or HTTP servers.
package handler
