package render

import (
	"github.com/gksrikar/portfolio/internal/content"
)

type sectionSpec struct {
	resource  content.Resource
	container string
	template  string
	class     string
}

// sectionTable maps each collection resource to its container and fragment
// template. The site resource binds to the profile instead.
var sectionTable = []sectionSpec{
	{resource: content.ResourceSkills, container: "skills-list", template: "skill", class: "badges"},
	{resource: content.ResourceCertifications, container: "certifications-list", template: "certification", class: "list"},
	{resource: content.ResourceExperience, container: "experience-list", template: "role", class: "list"},
	{resource: content.ResourceEducation, container: "education-list", template: "education", class: "list"},
	{resource: content.ResourceLeadership, container: "leadership-list", template: "role", class: "list"},
	{resource: content.ResourceProjects, container: "projects-grid", template: "project-card", class: "grid"},
}

// ContainerID returns the element id that receives the resource's fragments.
func ContainerID(r content.Resource) (string, bool) {
	for _, s := range sectionTable {
		if s.resource == r {
			return s.container, true
		}
	}

	return "", false
}

func records(doc *content.Document, r content.Resource) []any {
	switch r {
	case content.ResourceSkills:
		return toAny(doc.Skills)
	case content.ResourceCertifications:
		return toAny(doc.Certifications)
	case content.ResourceExperience:
		return toAny(doc.Experience)
	case content.ResourceEducation:
		return toAny(doc.Education)
	case content.ResourceLeadership:
		return toAny(doc.Leadership)
	case content.ResourceProjects:
		return toAny(doc.Projects)
	default:
		return nil
	}
}

func toAny[T any](list []T) []any {
	out := make([]any, len(list))
	for i, v := range list {
		out[i] = v
	}

	return out
}
