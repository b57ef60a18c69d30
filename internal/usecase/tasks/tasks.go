// Package tasks builds the pipeline's units of work. Constructors only render
// text: upstream results are interpolated verbatim and nothing is fetched.
package tasks

import (
	"fmt"

	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/prompts"
)

func ProductAnalysis(agent entity.AgentProfile, brief entity.ProductBrief) (entity.Task, error) {
	return build(entity.TaskProductAnalysis, agent,
		"A comprehensive product analysis report highlighting unique features, benefits, "+
			"and market positioning opportunities.",
		prompts.TaskData{Website: brief.Website, Details: brief.Details},
	)
}

func CompetitorAnalysis(agent entity.AgentProfile, brief entity.ProductBrief, productAnalysis string) (entity.Task, error) {
	return build(entity.TaskCompetitorAnalysis, agent,
		"A detailed competitor analysis report identifying top 3 competitors with strategic "+
			"comparisons and market positioning insights.",
		prompts.TaskData{Website: brief.Website, Details: brief.Details, ProductAnalysis: productAnalysis},
		entity.TaskProductAnalysis,
	)
}

func CampaignDevelopment(agent entity.AgentProfile, brief entity.ProductBrief, competitorAnalysis string) (entity.Task, error) {
	return build(entity.TaskCampaignDevelopment, agent,
		"A comprehensive marketing campaign strategy with creative content ideas tailored to "+
			"the target audience.",
		prompts.TaskData{Website: brief.Website, Details: brief.Details, CompetitorAnalysis: competitorAnalysis},
		entity.TaskCompetitorAnalysis,
	)
}

func InstagramAdCopy(agent entity.AgentProfile, campaign string) (entity.Task, error) {
	return build(entity.TaskAdCopy, agent,
		"Three compelling Instagram ad copy options that are attention-grabbing, persuasive, "+
			"and aligned with the marketing strategy.",
		prompts.TaskData{Campaign: campaign},
		entity.TaskCampaignDevelopment,
	)
}

func TakePhotograph(agent entity.AgentProfile, brief entity.ProductBrief, adCopy string) (entity.Task, error) {
	return build(entity.TaskPhotograph, agent,
		"Three creative photograph descriptions that would capture audience attention and "+
			"complement the Instagram ad copy.",
		prompts.TaskData{
			Website:  brief.Website,
			Details:  brief.Details,
			AdCopy:   adCopy,
			Examples: prompts.PhotographExamples,
		},
		entity.TaskAdCopy,
	)
}

func ReviewPhoto(agent entity.AgentProfile, brief entity.ProductBrief, photoDraft string) (entity.Task, error) {
	return build(entity.TaskPhotoReview, agent,
		"Three finalized and approved photograph descriptions that are aligned with the product "+
			"goals and campaign strategy.",
		prompts.TaskData{
			Website:    brief.Website,
			Details:    brief.Details,
			PhotoDraft: photoDraft,
			Examples:   prompts.PhotographExamples,
		},
		entity.TaskPhotograph,
	)
}

func build(
	name entity.TaskName,
	agent entity.AgentProfile,
	expected string,
	data prompts.TaskData,
	dependsOn ...entity.TaskName,
) (entity.Task, error) {
	description, err := prompts.RenderTask(name, data)
	if err != nil {
		return entity.Task{}, fmt.Errorf("build task %s: %w", name, err)
	}
	return entity.Task{
		Name:           name,
		Agent:          agent.Role,
		Description:    description,
		ExpectedOutput: expected,
		DependsOn:      dependsOn,
	}, nil
}
