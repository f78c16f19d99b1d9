package entities

type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateIntake     SessionState = "intake"
	StateExtracting SessionState = "extracting"
	StateEvaluating SessionState = "evaluating"
	StateDone       SessionState = "done"
	StateError      SessionState = "error"
)

// 前進のみ許可。Errorはどこからでも遷移可能
var stateOrder = map[SessionState]int{
	StateIdle:       0,
	StateIntake:     1,
	StateExtracting: 2,
	StateEvaluating: 3,
	StateDone:       4,
}

func (s SessionState) IsTerminal() bool {
	return s == StateDone || s == StateError
}

func (s SessionState) String() string {
	return string(s)
}
