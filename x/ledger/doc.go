/*
Package ledger keeps the balance of every address and enforces the minimum
reserve: an address that holds any value must hold at least the configured
minimum. Only a flush, which deletes the source wallet, may bypass the rule.

Other extensions move value through the Controller. Clients use SendMsg.
*/
package ledger
