// Package propertyname builds marketing property names such as
// "20240301 | LP | Spring-Launch".
package propertyname

import (
	"strings"
	"time"

	"utmkit/apperrors"
	"utmkit/config"
	"utmkit/validator"
)

const (
	separator  = " | "
	dateLayout = "20060102"
)

type Request struct {
	Types       []string `form:"property_types[]" json:"property_types"`
	Description string   `form:"description" json:"description" validate:"required"`
	EventDate   string   `form:"event_date" json:"event_date" validate:"required,isodate"`
	Partner     string   `form:"partner" json:"partner"`
}

type Generator struct {
	options *config.Options
}

func NewGenerator(options *config.Options) *Generator {
	return &Generator{options: options}
}

// Generate returns one name per known type code, in request order.
func (g *Generator) Generate(req Request) ([]string, error) {
	if len(req.Types) == 0 {
		return nil, apperrors.EmptySelection()
	}
	req.Description = strings.TrimSpace(req.Description)
	req.EventDate = strings.TrimSpace(req.EventDate)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	day, err := time.Parse(validator.DateLayout, req.EventDate)
	if err != nil {
		return nil, apperrors.InvalidDate("event_date")
	}
	date := day.Format(dateLayout)
	description := hyphenate(req.Description)
	partner := hyphenate(req.Partner)

	names := make([]string, 0, len(req.Types))
	for _, code := range req.Types {
		if _, ok := g.options.PropertyLabel(code); !ok {
			continue
		}
		parts := []string{date, code}
		if partner != "" {
			parts = append(parts, partner)
		}
		parts = append(parts, description)
		names = append(names, strings.Join(parts, separator))
	}
	if len(names) == 0 {
		return nil, apperrors.EmptySelection()
	}
	return names, nil
}

func hyphenate(s string) string {
	return strings.Join(strings.Fields(s), "-")
}
