// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models contain the table mappings and associations
// 3. ToDomain mappers convert persistence models into domain sales
//
// Structure:
// - sale.go: sales with their buyer, single product and line items
package models
