// Package x holds the application extensions: the authentication helpers
// shared by every handler, and in its sub packages the ledger, the savings
// accounts, signature verification and the common decorators.
package x
