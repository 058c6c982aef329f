package watcher

var (
	ConvertEvent = convertEvent
	Ignored      = ignored
)
