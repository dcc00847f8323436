/*
Package crypto provides the ed25519 keys used to sign transactions and the
conditions they fulfil.
*/
package crypto
