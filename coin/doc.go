/*
Package coin implements the ledger value types.

A Balance is an unsigned amount of the single ledger currency. All arithmetic
on balances is explicit: Add and Mul fail with errors.ErrOverflow instead of
wrapping, while SubSat floors at zero. Never use native operators on
balances where an overflow or underflow is possible.

A Fraction represents a rate (ie. a fee percentage) and is applied to a
balance with CeilMul, which rounds any leftover up to the next whole unit.
*/
package coin
