// Package domain contains the core domain model for gramhound.
//
// The domain is transport- and persistence-agnostic: it does not depend on
// net/http, the filesystem, or YAML parsing. Infra/adapters map into/from
// these types.
package domain
