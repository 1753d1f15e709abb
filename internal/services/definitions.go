package services

import (
	"portfolio_backend/internal/models"
)

type (
	SkillService    = ResourceService[models.Skill, *models.Skill]
	ProjectService  = ResourceService[models.Project, *models.Project]
	BlogPostService = ResourceService[models.BlogPost, *models.BlogPost]
)

func SkillDefinition() Definition[models.Skill] {
	return Definition[models.Skill]{
		Kind:            "skills",
		Label:           "Skill",
		Collection:      "skills",
		RequiredMessage: "Name and level are required",
	}
}

func ProjectDefinition() Definition[models.Project] {
	return Definition[models.Project]{
		Kind:            "projects",
		Label:           "Project",
		Collection:      "projects",
		RequiredMessage: "Title, description, and URL are required",
	}
}

// BlogPostDefinition: дата публикации проставляется при создании и дальше не меняется
func BlogPostDefinition() Definition[models.BlogPost] {
	return Definition[models.BlogPost]{
		Kind:            "blogs",
		Label:           "Blog post",
		Collection:      "blog_posts",
		RequiredMessage: "Title, excerpt, and content are required",
		BeforeCreate: func(post *models.BlogPost) {
			post.Date = models.Today()
		},
	}
}

func ArtworkDefinition() Definition[models.Artwork] {
	return Definition[models.Artwork]{
		Kind:            "artworks",
		Label:           "Artwork",
		Collection:      "artworks",
		RequiredMessage: "Title, category, and file are required",
		BeforeCreate: func(artwork *models.Artwork) {
			artwork.CreatedAt = models.Today()
		},
	}
}
