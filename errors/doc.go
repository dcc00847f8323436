/*
Package errors implements custom error interfaces for vault.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. Each extension registers its
own root errors with a unique code using Register. Code stands for ABCI error
code, which allows to distinguish types of errors on the client side and act
accordingly.

Create error instances using errors.Wrap(ErrXyz, "...") at
the point of creation to ensure a stacktrace is attached. If you wrap multiple
times, only the first wrap records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created

Two error categories are special. ErrPanic is set when a panic was recovered
and ErrAborted is used when a state transition that was judged valid could not
be completed by the ledger. Both are fatal (see IsFatal): the whole
transaction must be rolled back and must not be retried automatically.
*/
package errors
