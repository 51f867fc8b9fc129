package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"gigflow/internal/pkg/apperr"
)

const mongoIllegalOperation = 20

var transactionUnsupportedMessages = []string{
	"transaction numbers are only allowed on a replica set member or mongos",
	"transactions are not supported",
	"transaction blocks not allowed",
	"cannot start a transaction within a transaction",
}

// IsTransactionUnsupported reports whether err means the store cannot run
// multi-document transactions, as opposed to a transaction that failed.
func IsTransactionUnsupported(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apperr.ErrTransactionUnsupported) {
		return true
	}

	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(mongoIllegalOperation) {
		return true
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Name == "IllegalOperation" {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, m := range transactionUnsupportedMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// IsUniqueViolation reports whether err is a unique index violation on any
// supported backend.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
