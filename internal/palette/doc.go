// Package palette defines the canonical annotation color table and the
// color manager that assigns stable colors to annotation elements.
//
// The table maps color names to hex values. Several names intentionally share
// one hex value (red/critical, blue/info, gold/warning/yellow, green/success,
// teal/primary); these equivalence classes exist only so the consistency
// validator can treat "gold" in prose and "warning" on an image as the same
// color. Rendering always uses the literal resolved hex.
//
// The Manager memoizes assignments: the same element identifier always
// receives its first-assigned color on repeat lookups. Unsuggested elements
// are allocated round-robin from a seven-entry allocation palette.
package palette
