package dberr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/wtwr-backend/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "item not found",
			err:         NewNotFound("item", "507f1f77bcf86cd799439011"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "ITEM_NOT_FOUND",
			wantMessage: "Item not found",
		},
		{
			name:        "user not found wrapped",
			err:         fmt.Errorf("get user: %w", NewNotFound("user", "x")),
			wantStatus:  http.StatusNotFound,
			wantCode:    "USER_NOT_FOUND",
			wantMessage: "User not found",
		},
		{
			name:        "invalid item id",
			err:         NewInvalidID("item", "bad"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "ITEM_INVALID_ID",
			wantMessage: "Invalid item ID",
		},
		{
			name:        "invalid user id",
			err:         NewInvalidID("user", "bad"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "USER_INVALID_ID",
			wantMessage: "Invalid user ID",
		},
		{
			name:       "validation",
			err:        NewValidation("item", "document failed validation", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "ITEM_INVALID",
		},
		{
			name:        "unexpected store error",
			err:         Wrap("item", errors.New("connection reset")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
		{
			name:        "http error passes through",
			err:         errs.NewUnauthorizedError("Unauthorized", false),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(tt.err))

			assert.Equal(t, tt.wantStatus, httpErr.Status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, httpErr.Code)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, httpErr.Message)
			}
			assert.NotEmpty(t, httpErr.Message)
		})
	}
}

func TestFromPostgres(t *testing.T) {
	assert.NoError(t, FromPostgres("item", "id", nil))
	assert.Equal(t, NotFound, ErrCode(FromPostgres("item", "id", pgx.ErrNoRows)))
	assert.Equal(t, Other, ErrCode(FromPostgres("item", "id", errors.New("dial tcp: refused"))))

	err := FromPostgres("user", "", &pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_name_key",
	})
	assert.Equal(t, UniqueViolation, ErrCode(err))

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A user with this Name already exists", httpErr.Message)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr, "driver error stays reachable through Unwrap")
}

func TestFromPostgresNotNull(t *testing.T) {
	err := FromPostgres("item", "", &pgconn.PgError{Code: "23502", ColumnName: "image_url"})

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, "The Image Url is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "image_url", httpErr.Errors[0].Field)
}

func TestFromPostgresCheckViolation(t *testing.T) {
	err := FromPostgres("item", "", &pgconn.PgError{Code: "23514", ColumnName: "weather"})

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The Weather value does not meet required conditions", httpErr.Message)
}

func TestFromMongo(t *testing.T) {
	assert.NoError(t, FromMongo("item", "id", nil))
	assert.Equal(t, NotFound, ErrCode(FromMongo("item", "id", mongo.ErrNoDocuments)))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.Equal(t, UniqueViolation, ErrCode(FromMongo("user", "", dup)))

	invalid := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "Document failed validation"}}}
	err := FromMongo("item", "", invalid)
	assert.Equal(t, Validation, ErrCode(err))

	var dbErr *Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "121", dbErr.DatabaseCode)

	assert.Equal(t, Other, ErrCode(FromMongo("item", "", errors.New("server selection timeout"))))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "name", extractColumnForUniqueViolation("users_name_key"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_users_name"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
