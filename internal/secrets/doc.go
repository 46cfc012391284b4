// Package secrets provides access to the remote secret store backing the
// cloud deployment modes.
//
// The store is AWS Systems Manager Parameter Store, reached through the
// aws-sdk-go-v2 SSM client. A single Store is created at process start,
// is safe for concurrent use, and performs one remote round trip per
// lookup: the service deliberately does not cache secrets, so key
// rotation takes effect without a restart. Every call is bounded by a
// configurable timeout.
package secrets
