// Package server provides the HTTP surface of the hello service: route
// registration, request handlers, and the middleware chain (recovery,
// request ID, logging, metrics).
//
// The hello handler validates the request body before checking the API
// key, so a structurally invalid request is rejected with 422 no matter
// what key accompanies it.
package server
