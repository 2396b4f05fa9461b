// Package constants holds identifiers shared across layers.
package constants

import "time"

// DefaultTimeout bounds start/stop hooks of infrastructure resources.
const DefaultTimeout = 10 * time.Second

// Environments
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderRedis  = "redis"
)

// Queue task types
const (
	QueueDefault         = "default"
	TaskCollectionExpire = "collection:expire"
)

// FCM topics
const (
	TopicUserPrefix     = "user_"
	TopicRoleCollectors = "role_collector"
)
