// Package id generates identifiers for users, assets, and photos.
package id

import (
	googleuuid "github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// New returns a time-ordered UUIDv7 string. Asset and user ids use it so that
// ids never repeat and sort by creation time.
func New() string {
	u, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the clock/entropy read fails
		return googleuuid.New().String()
	}
	return u.String()
}

// Photo returns a short URL-safe id for a photo record. Photo ids only need to
// be unique within their asset.
func Photo() string {
	s, err := gonanoid.New(12)
	if err != nil {
		return New()
	}
	return "ph-" + s
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
