package notify

// Role-scoped rooms. Sessions join rooms according to the caller's role and
// receive every event published to them.
const (
	RoomAdmin     = "admin-room"
	RoomVolunteer = "volunteer-room"
)

// Event types carried on the real-time channel.
const (
	EventNewSosAlert        = "new_sos_alert"
	EventSosStatusUpdated   = "sos_status_updated"
	EventNewResourceRequest = "new_resource_request"
)

// Event is a denormalized snapshot of a changed entity, published to one or
// more rooms. Delivery is at-most-once per connected subscriber with no
// replay; a full-state re-fetch over HTTP is always available as a fallback.
type Event struct {
	Type    string      `json:"event"`
	Payload interface{} `json:"payload"`
	Rooms   []string    `json:"-"`
}

// Publisher is the port the workflow services publish through after their
// transactional write commits. Implementations must never block and never
// return delivery failures into the workflow.
type Publisher interface {
	Publish(event Event)
}
