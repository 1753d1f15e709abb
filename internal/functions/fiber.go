package functions

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
)

// NewFiberApp раздает диспетчер локально: любой путь превращается в Event
func NewFiberApp(d *Dispatcher, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
		BodyLimit:             bodyLimit,
	})

	app.All("/*", func(c *fiber.Ctx) error {
		res := d.Handle(c.UserContext(), EventFromFiber(c))
		for k, v := range res.Headers {
			c.Set(k, v)
		}
		return c.Status(res.StatusCode).SendString(res.Body)
	})

	return app
}

// EventFromFiber переводит запрос fiber в Event. Строки безопасны только при Immutable.
func EventFromFiber(c *fiber.Ctx) *Event {
	headers := make(map[string]string)
	for k, v := range c.GetReqHeaders() {
		name := strings.ToLower(k)
		headers[name] = joinHeader(name, v)
	}

	query := make(map[string]string)
	for k, v := range c.Queries() {
		query[k] = v
	}

	ev := &Event{
		HTTPMethod:            c.Method(),
		Path:                  c.Path(),
		Headers:               headers,
		QueryStringParameters: query,
	}

	body := c.Body()
	if utf8.Valid(body) {
		ev.Body = string(body)
	} else {
		ev.Body = base64.StdEncoding.EncodeToString(body)
		ev.IsBase64Encoded = true
	}
	return ev
}

// joinHeader склеивает повторы заголовка. Cookie разделяются "; ",
// иначе вторая cookie попадет в значение первой.
func joinHeader(name string, values []string) string {
	if name == "cookie" {
		return strings.Join(values, "; ")
	}
	return strings.Join(values, ", ")
}
