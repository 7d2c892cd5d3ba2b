package driver

// EventKind описывает фазу обработки одного файла в параллельном прогоне.
type EventKind uint8

const (
	EventStart EventKind = iota
	EventDone
	EventFail
)

// Event — прогресс параллельного прогона; потребляется UI.
type Event struct {
	Kind  EventKind
	Path  string
	Index int // позиция файла в отсортированном списке
	Total int
}

func emit(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}
