// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Every aggregate has a model with ToDomain/FromDomain conversions. Child
// rows (order lines, purchase lines, video scenes) are loaded eagerly with
// their parent via Preload.
package models
