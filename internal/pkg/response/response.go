package response

import "github.com/gofiber/fiber/v3"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

const (
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageTooManyRequests     = "too many requests"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

// JSON writes data as the bare response body.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if st < 400 {
		st = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessage(st)
	}
	return c.Status(st).JSON(ErrorResponse{Status: st, Error: message})
}

func NoContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessage(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusTooManyRequests:
		return MessageTooManyRequests
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
