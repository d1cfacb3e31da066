package intent

import (
	"errors"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/models"
)

// Check reports the first reason intent is not ready, or nil.
func Check(intent models.BridgeIntent) error {
	if intent.Source == nil {
		return common.NewError(common.KindIncompleteIntent, "source", "", errors.New("source chain not selected"))
	}
	if intent.Destination == nil {
		return common.NewError(common.KindIncompleteIntent, "destination", "", errors.New("destination chain not selected"))
	}
	if intent.Source.ID == intent.Destination.ID {
		return common.NewError(common.KindChainMismatch, "destination", intent.Destination.ID, errors.New("source and destination must differ"))
	}
	if !intent.Source.IsActive() {
		return common.NewError(common.KindChainUnavailable, "source", intent.Source.ID, errors.New("chain is inactive"))
	}
	if !intent.Destination.IsActive() {
		return common.NewError(common.KindChainUnavailable, "destination", intent.Destination.ID, errors.New("chain is inactive"))
	}
	if intent.Token == nil {
		return common.NewError(common.KindIncompleteIntent, "token", "", errors.New("token not selected"))
	}
	if intent.Token.Chain != intent.Source.ID {
		return common.NewError(common.KindChainMismatch, "token", intent.Token.Symbol+"@"+intent.Token.Chain, errors.New("token does not belong to the source chain"))
	}
	if intent.Amount == "" {
		return common.NewError(common.KindIncompleteIntent, "amount", "", errors.New("amount not entered"))
	}
	if _, err := ParseAmount(intent.Amount); err != nil {
		return err
	}
	return nil
}
