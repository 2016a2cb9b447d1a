// Package ledger defines Source, the boundary between the flow engine and
// whatever holds the authoritative trust graph — a chain node, an indexer
// database, a test fixture. The engine never reaches into ledger state
// directly; it only calls Source.Edges and Source.Fingerprint.
//
// MemorySource is a non-authoritative reference implementation: an
// in-process registry of signups, trust declarations, and token balances,
// useful for tests and examples. It derives Edge capacities from trust
// percentages the way the original Circles node did: a participant who
// trusts another at p% allows that other to receive up to p% of the
// trustee's own token balance.
package ledger
