/*
Package swap implements a two-party escrow swap of a single asset.

An initiator deposits an amount and names a counterparty together with the
amount the counterparty has to pay. The deposit is held on a per-swap escrow
address. The counterparty accepts by paying the requested amount, which
settles both legs and removes the record. Until then the initiator may
cancel and reclaim the deposit. A resolved swap leaves no trace, so
accepting or cancelling it again reports the swap as not found.
*/
package swap
