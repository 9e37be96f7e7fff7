package persistent

import (
	"errors"
	"fmt"

	"peergram/services/access/internal/entity"

	"gorm.io/gorm"
)

// translateError maps gorm errors onto the domain taxonomy. Anything that is
// not a recognizable not-found is treated as a transient store failure so
// callers never mistake an unresolved state for an answer.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ErrNotFound
	}
	return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
}
