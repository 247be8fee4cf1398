// Package domain contains shared domain building blocks used across entity
// sub-packages. Entity-specific types live in sub-packages (domain/list,
// domain/task, domain/tag). This root package holds the identity, audit, and
// domain-event capabilities entities compose, the Title/Description value
// objects, and the error taxonomy shared across all entities.
package domain
