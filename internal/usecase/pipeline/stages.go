package pipeline

import (
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/usecase/tasks"
)

// taskStep builds its task right before execution, from the results of the
// tasks it depends on.
type taskStep struct {
	name  entity.TaskName
	role  entity.Role
	build func(profile entity.AgentProfile, results map[entity.TaskName]string) (entity.Task, error)
}

type stage struct {
	name  entity.StageName
	roles []entity.Role
	steps []taskStep
}

func stages(brief entity.ProductBrief) []stage {
	return []stage{
		{
			name:  entity.StageCopy,
			roles: []entity.Role{entity.RoleMarketAnalyst, entity.RoleStrategist, entity.RoleContentCreator},
			steps: []taskStep{
				{
					name: entity.TaskProductAnalysis,
					role: entity.RoleMarketAnalyst,
					build: func(p entity.AgentProfile, _ map[entity.TaskName]string) (entity.Task, error) {
						return tasks.ProductAnalysis(p, brief)
					},
				},
				{
					name: entity.TaskCompetitorAnalysis,
					role: entity.RoleMarketAnalyst,
					build: func(p entity.AgentProfile, r map[entity.TaskName]string) (entity.Task, error) {
						return tasks.CompetitorAnalysis(p, brief, r[entity.TaskProductAnalysis])
					},
				},
				{
					name: entity.TaskCampaignDevelopment,
					role: entity.RoleStrategist,
					build: func(p entity.AgentProfile, r map[entity.TaskName]string) (entity.Task, error) {
						return tasks.CampaignDevelopment(p, brief, r[entity.TaskCompetitorAnalysis])
					},
				},
				{
					name: entity.TaskAdCopy,
					role: entity.RoleContentCreator,
					build: func(p entity.AgentProfile, r map[entity.TaskName]string) (entity.Task, error) {
						return tasks.InstagramAdCopy(p, r[entity.TaskCampaignDevelopment])
					},
				},
			},
		},
		{
			name:  entity.StageImage,
			roles: []entity.Role{entity.RolePhotographer, entity.RoleCreativeDirector},
			steps: []taskStep{
				{
					name: entity.TaskPhotograph,
					role: entity.RolePhotographer,
					build: func(p entity.AgentProfile, r map[entity.TaskName]string) (entity.Task, error) {
						return tasks.TakePhotograph(p, brief, r[entity.TaskAdCopy])
					},
				},
				{
					name: entity.TaskPhotoReview,
					role: entity.RoleCreativeDirector,
					build: func(p entity.AgentProfile, r map[entity.TaskName]string) (entity.Task, error) {
						return tasks.ReviewPhoto(p, brief, r[entity.TaskPhotograph])
					},
				},
			},
		},
	}
}
