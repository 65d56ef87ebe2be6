package ports

import "context"

// NotificationGateway abstracts the telephony provider. Both operations are
// fallible and the provider may be unconfigured entirely, in which case every
// call fails with domain.ErrGatewayUnavailable.
type NotificationGateway interface {
	// PlaceCall initiates a voice call to phone and returns the provider's
	// call identifier.
	PlaceCall(ctx context.Context, accountID, phone string) (string, error)
	SendMessage(ctx context.Context, accountID, phone, body string) error
}
