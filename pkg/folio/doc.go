// Package folio provides a reusable library for portfolio content
// management with pluggable repository and media storage backends.
//
// It exposes a single Service interface that orchestrates profile,
// section, and entry management, media upload/download, and optional
// event integrations. Implementations of repositories (e.g., memory,
// Postgres) and media stores (e.g., memory, filesystem, S3) are provided
// under subpackages.
//
// Content Strategy
//
// A Section carries a self-describing content value: the ordered field
// list and field configuration are snapshotted from a template
// descriptor at creation time, and the live entries are stored alongside
// them. Entry transforms are copy-on-write: callers must treat a
// SectionContent as an immutable value and persist the returned copy.
// Concurrent rewrites of the same section are guarded by a revision
// token checked by the repository on every conditional update.
package folio
