// Package queue schedules delayed lifecycle tasks on asynq.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"numatu/internal/domain/constants"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

// TaskCollectionExpire re-checks a claim once its window has elapsed
const TaskCollectionExpire = constants.TaskCollectionExpire

// ExpirePayload is the payload of a collection:expire task
type ExpirePayload struct {
	CollectionID uuid.UUID `json:"collection_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewExpireTask creates a collection:expire task
func NewExpireTask(payload ExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return asynq.NewTask(TaskCollectionExpire, body), nil
}

// ParseExpirePayload decodes the payload of a collection:expire task
func ParseExpirePayload(task *asynq.Task) (ExpirePayload, error) {
	var payload ExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ExpirePayload{}, errors.Wrap(err, "failed to unmarshal expire payload")
	}
	if payload.CollectionID == uuid.Nil {
		return ExpirePayload{}, errors.New("expire payload has no collection id")
	}

	return payload, nil
}

// expireTaskID lets asynq drop a duplicate schedule for the same claim
func expireTaskID(payload ExpirePayload) string {
	return fmt.Sprintf("expire:%s:%d", payload.CollectionID, payload.ExpiresAt.Unix())
}
