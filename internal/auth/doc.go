// Package auth implements API key resolution and request authorization.
//
// The Resolver determines the expected API key for the current deployment
// mode: the local environment in LOCAL mode, the remote secret store with
// an environment-variable fallback in the cloud modes. The Gate compares a
// caller-supplied key against the resolver's result and allows or denies
// the request.
//
// Resolution is fresh on every call. There is no caching, so a rotated
// key takes effect immediately at the cost of one secret store round trip
// per protected request.
package auth
