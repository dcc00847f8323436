/*
Package savings implements a single owner forced savings account.

Every payment made from the account withholds a fee of three percent. The
withheld value accumulates as savings that, together with the rest of the
account balance, can be claimed by the owner only once the account has
expired.

The account holds no balance itself. Balances, the minimum reserve, the
current time and the caller identity are provided by an Environment. In an
application the Environment is backed by the ledger extension.
*/
package savings
