package entity

type StageName string

const (
	StageCopy  StageName = "copy"
	StageImage StageName = "image"
)

type StageResult struct {
	Stage  StageName
	Output string
	Tasks  []TaskResult
}

// RunResult is returned only when both stages completed.
type RunResult struct {
	RunID  string
	Copy   string
	Photos string
	Stages []StageResult
}

// Output returns the result of a task from any stage.
func (r *RunResult) Output(task TaskName) (string, bool) {
	for _, stage := range r.Stages {
		for _, tr := range stage.Tasks {
			if tr.Task == task {
				return tr.Output, true
			}
		}
	}
	return "", false
}
