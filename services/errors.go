package services

import (
	"errors"
	"fmt"

	"hotel-reservation/apperror"
	"hotel-reservation/repository"
)

// mapRepoError turns a repository miss into a NotFoundError and wraps
// anything else with the failing operation.
func mapRepoError(op, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(resource, id)
	}
	return fmt.Errorf("%s: %w", op, err)
}
