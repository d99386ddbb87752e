// Package services contains the hang coordination logic: identity
// resolution, aggregated hang views, RSVPs, suggestions, the hang lifecycle,
// sharing and avatar storage. Services reach storage only through an
// injected repomanager.RepositoryManager.
package services

import (
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/google/uuid"
)

// checkID rejects identifiers that cannot name a stored hang or suggestion.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return nil
}

func requireIdentity(userID string) error {
	if userID == "" {
		return common.ErrorUnauthorized
	}
	return nil
}
