package model

// EventKind discriminates the AppEvent union. Every producer (host
// managers, the input worker, action tasks) emits values of this shape onto
// the single MPSC event channel the dispatcher drains.
type EventKind int

const (
	EventInitialContainerList EventKind = iota
	EventContainerCreated
	EventContainerDestroyed
	EventContainerStat
	EventContainerHealthChanged
	EventHostDisconnected

	EventToggleShowAll
	EventCycleSortField
	EventSetSortField
	EventEnterSearchMode
	EventSearchKeyEvent
	EventCancelActionMenu
	EventExitLogView
	EventShowLogView
	EventLogLine
	EventScrollUp
	EventScrollDown
	EventSelectPrevious
	EventSelectNext
	EventEnterPressed
	EventSelectActionUp
	EventSelectActionDown
	EventToggleHelp
	EventOpenDozzle
	EventQuit

	EventActionInProgress
	EventActionSuccess
	EventActionError
)

// AppEvent is the single event type published onto the MPSC channel and
// consumed by the App State Machine in the order the dispatcher drains them.
type AppEvent struct {
	Kind EventKind

	HostId HostId
	Key    ContainerKey

	Containers []Container
	Container  Container
	Stats      ContainerStats
	Health     HealthStatus
	HasHealth  bool

	SortField SortField

	SearchRune  rune
	SearchIsDel bool

	LogEntry LogEntry

	Action        ContainerAction
	ActionMessage string
}
