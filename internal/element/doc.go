// Package element defines the shared data model for the navigation audit
// engine: normalized interactive elements, role and route tables, and the
// typed result records every checker produces.
//
// All records are immutable by convention. Result records are created
// fresh inside a checker call and never mutated after return. The only
// behavior in this package is rectangle geometry and text normalization;
// rule logic lives in the checker packages.
//
// NavigationElement carries a non-owning NodeRef to the underlying
// rendered node. The engine never takes ownership of that node and never
// mutates it; the only node mutation anywhere in the system is the
// short-lived off-screen clone an inspection adapter creates and removes
// itself.
package element
