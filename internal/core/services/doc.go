// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search path is:
//
//	terms -> SearchEngine -> FieldIndex (word index, tag index) -> id set
//	id set -> RecordStore.Get -> live records
//
// Services are pure Go with no CGO or external dependencies.
package services
