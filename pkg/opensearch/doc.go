// Package opensearch connects to an OpenSearch cluster for the optional
// usage event index.
//
//	client, err := opensearch.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	index, err := opensearch.UsageIndex(ctx, client, cfg)
//	if err != nil {
//		return err
//	}
//	sink := usage.NewOpenSearchSink(client, index)
//
// Connectivity problems are reported as ErrConnectionFailed and
// ErrHealthcheckFailed.
package opensearch
