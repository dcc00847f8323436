/*
Package sigs verifies the ed25519 signatures of a transaction and keeps
one sequence number per public key, so that a signed transaction can only
be executed once.

The Decorator stores the verified signers in the context. Handlers read
them back through Authenticate, usually to check that the owner of a
savings account signed.
*/
package sigs
