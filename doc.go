/*
Package tandem defines the interfaces that tie the engine together: the
transaction and message abstractions, handlers and decorators, the key-value
store family, addresses and conditions, and the result types returned from
transaction processing.

Concrete functionality lives in the subpackages. The store hierarchy is under
store, generic persistence helpers under orm, and the state transition logic
under x (x/funds for the account ledger, x/swap for the swap lifecycle,
x/guard for reentrancy protection). The app package binds a store, a
decorator stack and a message router into a runnable application, hosted by
cmd/tandemd.
*/
package tandem
