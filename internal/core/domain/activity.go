package domain

import (
	"time"

	"github.com/google/uuid"
)

type Resource string

const (
	ResourceAuth   Resource = "auth"
	ResourceCampus Resource = "campus"
	ResourceZone   Resource = "zone"
	ResourceRider  Resource = "rider"
)

type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
	ActionLogout   Action = "logout"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Activity is one entry of the console audit log.
type Activity struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"sessionId"`
	Operator   string    `json:"operator"`
	Resource   Resource  `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	Action     Action    `json:"action"`
	Outcome    Outcome   `json:"outcome"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RoutingKey is the broker routing key of the activity event.
func (a *Activity) RoutingKey() string {
	return string(a.Resource) + "." + string(a.Action)
}
