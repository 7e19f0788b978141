package services

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/pkg/utils"
)

const dateLayout = "2006-01-02"

// ValidateForm turns a submission into the blob stored for page. Only the
// page's declared fields are kept.
func ValidateForm(page models.Page, values url.Values) (models.FormBlob, error) {
	fields, ok := models.FormFields[page.Name]
	if !ok {
		return nil, NewValidationError("", page.Label+" has no record form")
	}

	blob := make(models.FormBlob, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(values.Get(f.Name))

		if f.Kind == models.FieldCheckbox {
			if v != "" {
				blob[f.Name] = "yes"
			} else {
				blob[f.Name] = "no"
			}
			continue
		}

		if v == "" {
			if f.Required {
				return nil, NewValidationError(f.Name, f.Label+" is required")
			}
			blob[f.Name] = ""
			continue
		}

		if err := checkField(f, v); err != nil {
			return nil, err
		}
		if f.Kind == models.FieldTel {
			v = utils.NormalizePhone(v)
		}
		blob[f.Name] = v
	}
	return blob, nil
}

func checkField(f models.Field, v string) error {
	switch f.Kind {
	case models.FieldEmail:
		if !utils.ValidEmail(v) {
			return NewValidationError(f.Name, f.Label+" must be a valid email address")
		}
	case models.FieldTel:
		if !utils.ValidPhone(v) {
			return NewValidationError(f.Name, f.Label+" must be a valid phone number")
		}
	case models.FieldNumber:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return NewValidationError(f.Name, f.Label+" must be a number")
		}
		if f.Max > f.Min && (n < f.Min || n > f.Max) {
			return NewValidationError(f.Name, f.Label+" must be between "+
				strconv.FormatFloat(f.Min, 'f', -1, 64)+" and "+strconv.FormatFloat(f.Max, 'f', -1, 64))
		}
	case models.FieldDate:
		if _, err := time.Parse(dateLayout, v); err != nil {
			return NewValidationError(f.Name, f.Label+" must be a date (YYYY-MM-DD)")
		}
	case models.FieldSelect:
		if len(f.Options) > 0 && !slices.Contains(f.Options, v) {
			return NewValidationError(f.Name, f.Label+" has an unknown option")
		}
	}
	return nil
}
