package entity

type Role string

const (
	RoleMarketAnalyst    Role = "Lead Market Analyst"
	RoleStrategist       Role = "Chief Marketing Strategist"
	RoleContentCreator   Role = "Creative Content Creator"
	RolePhotographer     Role = "Senior Photographer"
	RoleCreativeDirector Role = "Chief Creative Director"
)

func (r Role) String() string {
	return string(r)
}

// AgentProfile describes a role. It carries no behavior and never changes
// once a run has built it.
type AgentProfile struct {
	Role            Role
	Goal            string
	Backstory       string
	Tools           []ToolName
	AllowDelegation bool
	MaxIterations   int
	Verbose         bool
}

type StepKind string

const (
	StepThought     StepKind = "thought"
	StepToolCall    StepKind = "tool_call"
	StepObservation StepKind = "observation"
	StepFinalAnswer StepKind = "final_answer"
)

// AgentStep is one traced reasoning step of an agent.
type AgentStep struct {
	Agent     Role
	Task      TaskName
	Iteration int
	Kind      StepKind
	Tool      string
	Content   string
}
