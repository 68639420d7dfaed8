/*
Package funds implements a minimal single-asset ledger. Every address owns
at most one wallet holding a non-negative balance. Other extensions move
value through the Controller interface instead of touching wallets
directly.
*/
package funds
