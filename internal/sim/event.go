package sim

// Event is one narrated outcome in the world's append-only log.
type Event struct {
	T     int    `json:"t"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Team  string `json:"team"`
	Text  string `json:"text"`
	Thing Thing  `json:"-"`
}

func newEvent(t int, th Thing, text string) Event {
	b := th.Base()
	return Event{T: t, ID: b.ID, Name: b.Name, Team: b.Team, Text: text, Thing: th}
}
