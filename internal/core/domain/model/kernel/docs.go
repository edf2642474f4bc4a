// Package kernel provides the primitives shared by every aggregate of the
// olive supply-chain domain.
//
// The package includes:
//   - ID: the persisted identity of an aggregate, assigned by storage
//   - Code: the immutable {tag}-{YYYYMMDD}-{000042} traceability code derived from an ID
//   - Identity: an ID and Code pair assigned exactly once
//   - UUID: the identifier of an actor supplied by the identity collaborator
//   - Actor and Role: the authenticated caller
//   - Party: a mill, farmer or consumer acting as seller, buyer, creator or owner
//   - Quantity and Money: exact decimal amounts with a unit or currency
//
// Values are immutable and must be created through their constructors; the
// zero value of every type fails Validate.
package kernel
