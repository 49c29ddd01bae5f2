package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// parseDate lee un query param de fecha (YYYY-MM-DD o RFC3339). Devuelve nil
// si el parámetro no viene.
func parseDate(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseDateRange lee from/to con valores por defecto: desde el inicio de los
// tiempos hasta el fin del día de hoy.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := parseDate(c, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(c, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	f := time.Time{}
	if from != nil {
		f = *from
	}
	t := time.Now().Add(24 * time.Hour)
	if to != nil {
		// El límite superior cubre el día completo.
		t = to.Add(24*time.Hour - time.Nanosecond)
	}
	return f, t, nil
}
