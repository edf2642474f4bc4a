// Package good models the physical goods that move through the supply chain:
// harvested olives, olives bought by a mill, and oil products.
//
// Every good carries a Stock, the quantity it was created with and the part
// of it not yet committed to an offer or an operation. Goods are never
// deleted; a good whose stock is fully allocated simply has nothing left to
// offer.
//
// Oil products form a lineage: a product made by extraction points at the
// extraction operation, a product bought from another party points at its
// mother product. The lineage is stored as optional IDs and is walked by the
// ownership resolver in the domain services package.
package good
