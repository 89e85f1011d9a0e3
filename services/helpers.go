package services

import (
	"context"
	"errors"

	apperrors "github.com/pirate444/food-order-app/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// storeError maps a repository failure to the right application error:
// timeouts and connectivity problems surface as store-unavailable, anything
// else as unexpected.
func storeError(err error) *apperrors.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.StoreUnavailable(err)
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return apperrors.StoreUnavailable(err)
	}
	return apperrors.Unexpected(err)
}
