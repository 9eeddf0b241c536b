package content

import "strings"

// Profile is the site-wide metadata loaded from data/site.json.
// Every field is optional.
type Profile struct {
	Name     string `json:"name"`
	Tagline  string `json:"tagline"`
	About    string `json:"about"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Email    string `json:"email"`
	Resume   string `json:"resume"`
	Photo    string `json:"photo"`
}

type Skill string

type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Link   string `json:"link"`
}

// Role is a position held, used for both employment and leadership.
type Role struct {
	Role         string   `json:"role"`
	Organization string   `json:"organization"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Location     string   `json:"location"`
	Bullets      []string `json:"bullets"`
}

func (r Role) Period() string {
	return period(r.Start, r.End)
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Details     string `json:"details"`
}

func (e Education) Period() string {
	return period(e.Start, e.End)
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
}

const periodSeparator = " – "

func period(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	switch {
	case start != "" && end != "":
		return start + periodSeparator + end
	case start != "":
		return start
	default:
		return end
	}
}
