// Package facility contains the places goods come from and are kept in: oil
// mills, run by a mill manager, with the machines installed there; olive
// groves, owned by a farmer; and storage areas, owned by a mill or a farmer.
//
// All of them are created through their constructors and receive their ID
// from storage. A mill's capabilities (laboratory, packaging unit) decide
// which service offers it may make.
package facility
