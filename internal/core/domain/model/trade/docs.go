// Package trade implements the olive and oil marketplace.
//
// A seller publishes an Offer for part of a good it owns. Buyers place
// Requests against the offer; the seller approves or rejects them and an
// approved buyer confirms the purchase, which reserves the requested quantity
// from the offer. A Need is a standing demand that sellers may answer with an
// offer.
//
// Offer lifecycle:
//
//	Available ──┬──> Closed     (available quantity reached zero)
//	            └──> Cancelled  (seller action)
//
// Request lifecycle:
//
//	Pending ──┬──> Approved ──> Bought
//	          ├──> Rejected
//	          └──> Bought       (oil trade only)
//
// Conservation: for every offer, the requested quantities of its Bought
// requests add up to initial - available.
package trade
