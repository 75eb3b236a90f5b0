package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/retail-sales-dashboard/internal/query"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const serverErrorMessage = "Server Error"

// MapError turns a handler error into a status and body. Only validation
// errors reveal detail to the client; storage failures are logged and
// reported generically.
func MapError(err error) (int, ErrorResponse) {
	var ve *query.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Message: ve.Error()}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Every storage failure is a 500; the code only changes how it is logged.
		switch pgErr.Code {
		case "57014": // query_canceled
			log.Warn().Err(err).Str("pg_code", pgErr.Code).Msg("sales query canceled")
		case "53300": // too_many_connections
			log.Error().Err(err).Str("pg_code", pgErr.Code).Msg("sales database saturated")
		default:
			log.Error().Err(err).Str("pg_code", pgErr.Code).Msg("sales database error")
		}
		return http.StatusInternalServerError, ErrorResponse{Message: serverErrorMessage}
	}

	var dae *query.DataAccessError
	if errors.As(err, &dae) {
		log.Error().Err(dae.Err).Str("op", dae.Op).Msg("data access failed")
		return http.StatusInternalServerError, ErrorResponse{Message: serverErrorMessage}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Message: serverErrorMessage}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
