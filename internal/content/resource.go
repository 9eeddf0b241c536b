package content

import "path"

// Resource names one JSON data file loaded independently at page start.
type Resource string

const (
	ResourceSite           Resource = "site"
	ResourceSkills         Resource = "skills"
	ResourceCertifications Resource = "certifications"
	ResourceExperience     Resource = "experience"
	ResourceEducation      Resource = "education"
	ResourceLeadership     Resource = "leadership"
	ResourceProjects       Resource = "projects"
)

// Resources lists every resource in page order.
var Resources = []Resource{
	ResourceSite,
	ResourceSkills,
	ResourceCertifications,
	ResourceExperience,
	ResourceEducation,
	ResourceLeadership,
	ResourceProjects,
}

const DataDir = "data"

// Path is the well-known relative location of the resource.
func (r Resource) Path() string {
	return path.Join(DataDir, string(r)+".json")
}

// FileName is the resource path relative to the data directory.
func (r Resource) FileName() string {
	return string(r) + ".json"
}

func (r Resource) String() string {
	return string(r)
}
