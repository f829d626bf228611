package domain

// PollLocationResult reports the outcome of polling one subscribed location.
type PollLocationResult struct {
	// Location is the polled location.
	Location string `json:"location"`
	// Fetched reports whether a reading was fetched and stored.
	Fetched bool `json:"fetched"`
	// Notifications is the number of weather update events enqueued.
	Notifications int `json:"notifications"`
	// Error holds the failure message when the location could not be polled.
	Error string `json:"error,omitempty"`
}
