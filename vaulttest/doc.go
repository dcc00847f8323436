/*
Package vaulttest provides mocks and helpers for testing handlers,
decorators and extensions in isolation.
*/
package vaulttest
