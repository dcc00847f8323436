/*
Package app contains the building blocks of an abci application: a message
router, decorator chains, and the StoreApp/BaseApp pair that owns the
committed state and dispatches every call.

All abci calls are serialized. A call runs to completion before the next one
starts, so handlers never observe interleaved state.
*/
package app
