package mongo

import "errors"

var (
	ErrEmptyConnectionURL     = errors.New("empty mongo connection URL, use MONGODB_URL env var")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrFailedToCreateIndex    = errors.New("failed to create mongo index")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
)
