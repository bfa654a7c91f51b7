package opensearch

import "errors"

var (
	ErrNoAddresses         = errors.New("no opensearch addresses, use OPENSEARCH_ADDRESSES env var")
	ErrConnectionFailed    = errors.New("opensearch connection failed")
	ErrHealthcheckFailed   = errors.New("opensearch healthcheck failed")
	ErrFailedToCreateIndex = errors.New("failed to create opensearch index")
)
