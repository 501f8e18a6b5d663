// Package models contains the GORM persistence models of the tenant schema
// tables. Domain entities stay free of ORM tags; each model converts to and
// from its entity with ToDomain / FromDomain.
//
// Every table lives in the tenant's own schema. Models carry no tenant
// column: the schema is selected per transaction through search_path.
package models
