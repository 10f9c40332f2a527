// internal/app/system/txn/txn.go

// Package txn wraps multi-document updates in a MongoDB transaction with a
// single scoped helper, so abort-on-error and commit-on-success never
// depend on call sites getting the begin/commit/abort triplet right.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction on db's client. Any error returned
// by fn aborts the transaction and is returned unchanged; fn returning nil
// commits. The context fn receives must be used for every store call so
// the operations join the session.
//
// Deployments without transaction support (standalone servers, some
// DocumentDB configurations) fall back to running fn without a
// transaction, logged at warn level, matching how the rest of the app
// degrades on reduced Mongo feature sets.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logFallback(log, err)
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logFallback(log, err)
		return fn(ctx)
	}
	return err
}

func logFallback(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("mongo transactions unsupported, running without transaction", zap.Error(err))
	}
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (as opposed to a transaction that failed).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation on non-replica-set, 51 IllegalOperation,
		// 263 OperationNotSupportedInTransaction
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }

	if has("transaction") && (has("replica set") || has("session") || has("illegal operation")) {
		return true
	}
	if has("session") && has("not supported") {
		return true
	}
	return false
}
