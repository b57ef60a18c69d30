package entity

type TaskName string

const (
	TaskProductAnalysis     TaskName = "product_analysis"
	TaskCompetitorAnalysis  TaskName = "competitor_analysis"
	TaskCampaignDevelopment TaskName = "campaign_development"
	TaskAdCopy              TaskName = "instagram_ad_copy"
	TaskPhotograph          TaskName = "take_photograph"
	TaskPhotoReview         TaskName = "review_photo"
	TaskDelegated           TaskName = "delegated_work"
)

// ProductBrief holds what the user typed in.
type ProductBrief struct {
	Website string
	Details string
}

type Task struct {
	Name           TaskName
	Agent          Role
	Description    string
	ExpectedOutput string
	DependsOn      []TaskName
}

type TaskResult struct {
	Task       TaskName
	Agent      Role
	Output     string
	Iterations int
	Exhausted  bool
}
