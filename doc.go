// Package umesh implements an in-memory data model for large
// unstructured meshes with mixed element types (triangles, quads,
// tetrahedra, pyramids, wedges, hexahedra and implicit structured
// sub-grids), together with merge/append operations over meshes.
//
// A Mesh owns one shared vertex array; every element stores 0-based
// indices into it. Cached derived state (spatial bounds, scalar value
// ranges) is only valid after Finalize has been called following the
// last mutation; accessors return an error otherwise.
//
// Serialization lives in the codec package, object-space partitioning
// into bricks in the partition package, and importers for foreign
// formats in ugrid and rawvol.
package umesh
