package pubsub

import (
	"strconv"

	"numatu/internal/domain/service"
)

// Message attribute keys shared by every provider
const (
	attrCollectionID = "collection_id"
	attrStatus       = "status"
	attrVersion      = "version"
	attrOrigin       = "origin"
	attrRequestID    = "request_id"
)

func eventAttributes(event *service.ChangeEvent) map[string]string {
	attributes := map[string]string{
		attrVersion: strconv.FormatInt(event.Version, 10),
	}
	if event.Collection != nil {
		attributes[attrCollectionID] = event.Collection.ID.String()
		attributes[attrStatus] = event.Collection.Status.String()
	}
	if event.Origin != "" {
		attributes[attrOrigin] = event.Origin
	}
	if event.RequestID != "" {
		attributes[attrRequestID] = event.RequestID
	}

	return attributes
}
