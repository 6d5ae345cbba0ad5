package propertyname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utmkit/apperrors"
	"utmkit/config"
)

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator(config.DefaultOptions())

	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			"one name per type in request order",
			Request{Types: []string{"LP", "EM"}, Description: "Spring Launch", EventDate: "2024-03-01"},
			[]string{"20240301 | LP | Spring-Launch", "20240301 | EM | Spring-Launch"},
		},
		{
			"partner goes before the description",
			Request{Types: []string{"WB"}, Description: "  Cloud  Ops  101 ", EventDate: "2023-12-31", Partner: " Acme Corp "},
			[]string{"20231231 | WB | Acme-Corp | Cloud-Ops-101"},
		},
		{
			"unknown codes are skipped",
			Request{Types: []string{"XX", "NL"}, Description: "Monthly", EventDate: "2024-02-29"},
			[]string{"20240229 | NL | Monthly"},
		},
		{
			"blank partner is left out",
			Request{Types: []string{"TD"}, Description: "Expo", EventDate: "2024-06-01", Partner: "   "},
			[]string{"20240601 | TD | Expo"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gen.Generate(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_Generate_errors(t *testing.T) {
	gen := NewGenerator(config.DefaultOptions())

	tests := []struct {
		name    string
		req     Request
		wantErr error
		message string
	}{
		{
			"no types",
			Request{Description: "Spring", EventDate: "2024-03-01"},
			apperrors.ErrEmptySelection,
			"At least one property type must be selected",
		},
		{
			"only unknown types",
			Request{Types: []string{"XX"}, Description: "Spring", EventDate: "2024-03-01"},
			apperrors.ErrEmptySelection,
			"At least one property type must be selected",
		},
		{
			"blank description",
			Request{Types: []string{"LP"}, Description: " \t", EventDate: "2024-03-01"},
			apperrors.ErrMissingField,
			"description is required",
		},
		{
			"missing date",
			Request{Types: []string{"LP"}, Description: "Spring"},
			apperrors.ErrMissingField,
			"event_date is required",
		},
		{
			"malformed date",
			Request{Types: []string{"LP"}, Description: "Spring", EventDate: "03/01/2024"},
			apperrors.ErrInvalidDate,
			"event_date must be a valid date in YYYY-MM-DD format",
		},
		{
			"impossible date",
			Request{Types: []string{"LP"}, Description: "Spring", EventDate: "2023-02-30"},
			apperrors.ErrInvalidDate,
			"event_date must be a valid date in YYYY-MM-DD format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestGenerator_customOptions(t *testing.T) {
	opts, err := config.NewOptions(
		[]config.Medium{{Name: "email", Sources: []string{"newsletter"}}},
		[]config.PropertyType{{Code: "POD", Label: "Podcast"}},
		[]string{"NA"},
	)
	require.NoError(t, err)

	names, err := NewGenerator(opts).Generate(Request{Types: []string{"LP", "POD"}, Description: "Ep 1", EventDate: "2024-01-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"20240105 | POD | Ep-1"}, names)
}
