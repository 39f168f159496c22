package entity

import "github.com/google/uuid"

// IDGenerator is a function that generates unique IDs.
type IDGenerator func() string

// UUIDGenerator returns an IDGenerator backed by random UUIDs. It is
// the default for managers and buses; tests inject deterministic ones.
func UUIDGenerator() IDGenerator {
	return func() string {
		return uuid.NewString()
	}
}
