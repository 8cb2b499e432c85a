// Package inventory holds the pure product pipeline: field validation,
// derived financial values, dashboard aggregates, and CSV/XLSX conversion.
//
// Nothing in this package touches storage. Invalid input is reported through
// returned values (model.FieldErrors, *model.DomainError), never by panicking.
package inventory
