package dberr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/wtwr-backend/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var uniqueConstraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// HandleError converts any error reaching the HTTP layer into an
// *errs.HTTPError. Errors that already are *errs.HTTPError pass through;
// typed store errors are mapped by Code; everything else is a generic 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var dbErr *Error
	if !errors.As(err, &dbErr) {
		return errs.NewInternalServerError()
	}

	errorCode := generateErrorCode(dbErr)
	userMessage := formatUserFriendlyMessage(dbErr)

	switch dbErr.Code {
	case NotFound:
		return errs.NewNotFoundError(userMessage, true, &errorCode)

	case InvalidID:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case Validation, CheckViolation, ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case UniqueViolation:
		if column := extractColumnForUniqueViolation(dbErr.ConstraintName); column != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(column))
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(dbErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	default:
		return errs.NewInternalServerError()
	}
}

// generateErrorCode builds codes such as ITEM_NOT_FOUND or USER_INVALID_ID.
func generateErrorCode(e *Error) string {
	domain := strings.ToUpper(e.Entity)
	if domain == "" {
		domain = "RECORD"
	}

	action := "ERROR"
	switch e.Code {
	case NotFound, ForeignKeyViolation:
		action = "NOT_FOUND"
	case InvalidID:
		action = "INVALID_ID"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, Validation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(e *Error) string {
	entity := getEntityName(e)

	switch e.Code {
	case NotFound:
		return fmt.Sprintf("%s not found", entity)

	case InvalidID:
		return fmt.Sprintf("Invalid %s ID", strings.ToLower(entity))

	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", strings.ToLower(getReferencedName(e)))

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entity))

	case NotNullViolation:
		fieldName := humanizeText(e.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation, Validation:
		if fieldName := humanizeText(e.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return fmt.Sprintf("The %s does not meet required conditions", strings.ToLower(entity))

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers the domain entity and falls back to the table.
func getEntityName(e *Error) string {
	if e.Entity != "" {
		return humanizeText(e.Entity)
	}

	if e.TableName != "" {
		return humanizeText(strings.TrimSuffix(e.TableName, "s"))
	}

	return "Record"
}

// getReferencedName derives the referenced entity from an "<entity>_id" column.
func getReferencedName(e *Error) string {
	column := strings.ToLower(e.ColumnName)
	if strings.HasSuffix(column, "_id") {
		return humanizeText(strings.TrimSuffix(column, "_id"))
	}
	return getEntityName(e)
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation reads the column out of constraint names
// such as "users_name_key" or "unique_users_name".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueConstraintColumn.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}
