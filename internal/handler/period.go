package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dateOnly = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// endOfDay is the last instant the store can represent on that day (microsecond precision),
// so a bare end date covers sales up to 23:59:59 and nothing from the next day.
func endOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Microsecond)
}

// parseInstant accepts a date-time or a bare date. Values without an offset are read as UTC.
func parseInstant(value string) (t time.Time, bareDate bool, err error) {
	if d, err := time.Parse(dateOnly, value); err == nil {
		return d, true, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q, use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", value)
}

func firstQuery(c *fiber.Ctx, keys ...string) string {
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			return v
		}
	}
	return ""
}

// parsePeriod reads fecha_inicio/fecha_fin (aliases inicio/fin, start/end). A bare end date
// is moved to the end of that day.
func parsePeriod(c *fiber.Ctx) (start, end time.Time, err error) {
	rawStart := firstQuery(c, "fecha_inicio", "inicio", "start")
	rawEnd := firstQuery(c, "fecha_fin", "fin", "end")
	if rawStart == "" || rawEnd == "" {
		return start, end, errors.New("fecha_inicio and fecha_fin are required")
	}

	start, _, err = parseInstant(rawStart)
	if err != nil {
		return start, end, err
	}

	end, bare, err := parseInstant(rawEnd)
	if err != nil {
		return start, end, err
	}
	if bare {
		end = endOfDay(end)
	}
	return start, end, nil
}
