// Package domain contains the pure domain model for the MRZ bounded context.
//
// # MRZ Bounded Context
//
// The MRZ context turns the machine readable zone printed on passports and
// identity cards into typed evidence: a document layout, its fields, its
// check digits and its two dates.
//
// # Subdomain Structure
//
//	mrz/domain/
//	├── shared/     # Shared Kernel - the MRZ date value and century policies
//	└── document/   # Document Subdomain - TD1/TD2/TD3 layouts and check digits
//
// # Shared Kernel (shared/)
//
//   - Date: a YYMMDD value that keeps the characters it was read from
//   - PivotPolicy: resolves a two-digit year against a reference instant
//
// Key Invariants:
//   - A Date always renders back to six characters, even when unparseable
//   - Components that could not be read hold -1 and the Date is not valid
//   - Ordering and hashing use the numbers only; equality also uses the text
//
// # Document Subdomain (document/)
//
// Aggregate Root: Document
//   - Detected from line count and line length
//   - Carries a Check per check digit the layout defines
//   - A broken date never fails parsing; it is reported through Date.IsValid
//
// # Domain Purity
//
//	✓ No I/O (no database, HTTP, filesystem access)
//	✓ No context.Context in function signatures
//	✓ No time.Now() calls - reference instants are received as parameters
//	✓ Diagnostics go to an injected *slog.Logger, discarded by default
package domain
