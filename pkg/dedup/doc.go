// Package dedup collapses near-duplicate entity mentions into canonical
// representatives using embedding similarity.
//
// Mentions are embedded in one batch, L2-normalized, and clustered with a
// single greedy pass: each still-unassigned mention opens a cluster and
// absorbs every later unassigned mention whose cosine similarity to the
// cluster seed clears the threshold. Membership is checked against the seed
// only, so clustering is deliberately not transitive: A~B and B~C do not pull
// A and C together unless A~C itself clears the threshold.
//
// The representative of a cluster is its longest member string, ties going to
// the first-encountered member. Given a deterministic embedding provider and
// a fixed input order, the output is fully deterministic.
package dedup
