package service

import (
	"errors"

	"github.com/skillora/skillora-backend/internal/app/model"
)

// ErrNotOwner is returned when an acting user tries to mutate a record
// they do not control.
var ErrNotOwner = errors.New("acting user does not own this record")

// ensureOwner is the single write guard for owned records. Callers map
// it to the endpoint-specific permission message.
func ensureOwner(record model.Owned, actingUserID uint) error {
	if record.OwnerID() != actingUserID {
		return ErrNotOwner
	}
	return nil
}
