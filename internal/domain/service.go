package domain

// ServiceID names a backend service the gateway can route to.
type ServiceID string

const (
	// ServiceAuth handles /auth/... endpoints.
	ServiceAuth ServiceID = "AUTH"
	// ServiceRoomManagement handles /rooms/... endpoints.
	ServiceRoomManagement ServiceID = "ROOM_MANAGEMENT"
)

// ServiceRegistry maps service identifiers to base URLs.
// It is built once at startup and never mutated afterwards.
type ServiceRegistry map[ServiceID]string

// BaseURL returns the base URL registered for a service.
func (r ServiceRegistry) BaseURL(service ServiceID) (string, bool) {
	baseURL, ok := r[service]
	if !ok || baseURL == "" {
		return "", false
	}
	return baseURL, true
}

// Services returns the registered identifiers in a stable order.
func (r ServiceRegistry) Services() []ServiceID {
	ids := make([]ServiceID, 0, len(r))
	for _, id := range []ServiceID{ServiceAuth, ServiceRoomManagement} {
		if _, ok := r[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
