// Package mongo connects to MongoDB with the v2 driver for the optional
// usage event store.
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	coll, err := mongo.UsageCollection(ctx, client, cfg)
//	if err != nil {
//		return err
//	}
//	sink := usage.NewMongoSink(coll)
package mongo
