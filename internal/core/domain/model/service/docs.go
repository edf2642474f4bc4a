// Package service implements the mill services pipeline shared by
// extraction, packaging, storage and analysis.
//
// A farmer posts a Request for a service on one of their goods (a harvest for
// extraction, an oil product otherwise). Mills answer with Offers. The farmer
// approves one offer, which confirms the request and rejects the competing
// offers, and the mill later completes the work, producing an Operation.
//
//	Request: Pending ──> Responded ──┬──> Confirmed
//	            └────────────────────┴──> Cancelled
//
//	Offer:   Pending ──┬──> Approved ──> Extracted | Packaged | Stored | Analysed
//	                   └──> Rejected
//
// The four kinds share these types. What differs per kind is carried by a
// tagged payload: Details on the request and Record on the operation.
package service
