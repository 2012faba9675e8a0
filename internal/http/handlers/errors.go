package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/apiclient"
	applog "storeadmin/internal/log"
	"storeadmin/internal/services"
)

// statusFor picks the response status of a failed store API call.
func statusFor(err error) int {
	switch apiclient.KindOf(err) {
	case apiclient.KindValidation:
		return fiber.StatusBadRequest
	case apiclient.KindClient:
		if apiclient.IsUnauthorized(err) {
			return fiber.StatusUnauthorized
		}
		return fiber.StatusBadRequest
	case apiclient.KindServer, apiclient.KindNetwork:
		return fiber.StatusBadGateway
	}
	if errors.Is(err, services.ErrBlankColor) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// userMessage turns err into text safe to show: the action that failed plus
// the validation details the API returned, nothing else.
func userMessage(action string, err error) string {
	var ae *apiclient.Error
	if !errors.As(err, &ae) {
		return action
	}
	switch {
	case ae.Kind == apiclient.KindValidation && len(ae.Details) > 0:
		return action + ": " + strings.Join(ae.Details, "; ")
	case apiclient.IsUnauthorized(err):
		return action + ": the store API rejected your session, please sign in again"
	case ae.Kind == apiclient.KindNetwork:
		return action + ": the store API is unreachable"
	}
	return action
}

// writeFailure picks the message for a failed write. When the API accepted
// the write but the list reload failed, the page reports the stale list.
func writeFailure(err error, writeMsg, loadMsg string) string {
	if errors.Is(err, services.ErrReloadFailed) {
		return userMessage(loadMsg, err)
	}
	return userMessage(writeMsg, err)
}

// logWriteFail logs action.fail, or the audit event plus action.reload.fail
// when only the reload after an accepted write failed.
func logWriteFail(c *fiber.Ctx, action string, err error, fields map[string]any) {
	if errors.Is(err, services.ErrReloadFailed) {
		applog.Audit(c, action, fields)
		applog.Error(c, action+".reload.fail", err, fields)
		return
	}
	applog.Error(c, action+".fail", err, fields)
}
