// Package ledger turns expense, split and settlement records into net
// balances between users.
//
// Every function in this package is a pure computation over records that the
// caller has already loaded. Nothing here reads from or writes to a store,
// except through the optional UserGetter fallback used to resolve display
// names for ids that are missing from a snapshot.
//
// Sign convention: a positive ledger amount means the subject owes the
// counterparty, a negative amount means the counterparty owes the subject.
// Amounts are never rounded here; rounding is a presentation concern.
package ledger
