// Package services holds the domain services that span several aggregates.
//
// The package includes:
//   - PurchaseConfirmer: reserves an offer's quantity for a request and
//     builds the goods transferred by the purchase
//   - OperationCompleter: turns an approved service offer into an operation
//     and applies its effect on the oil product
//   - Arena and OwnershipResolver: the lineage graph of oil products and the
//     read-time derivation of their owner
//
// None of them perform I/O. Callers load the aggregates, call the service
// and persist the result within one unit of work.
package services
