package models

// Project is the JSON document emitted for every accepted CSV row.
//
// All fields are strings; unknown values are written as "" rather than being
// omitted, which keeps the schema stable for static-site consumers.
type Project struct {
	// ID is the slug of Name (unique within a run, used as filename stem)
	ID string `json:"id"`

	// Name is the project name as written in the input
	Name string `json:"name"`

	// Description comes from the input or, failing that, the homepage meta tags
	Description string `json:"description"`

	// Location is the optional location column
	Location string `json:"location"`

	Links Links `json:"links"`
}

// Links groups the external references of a project.
type Links struct {
	// Logo is the public path of the downloaded logo (e.g., /imgs/DeFi/DEX/uniswap.png)
	Logo string `json:"logo"`

	// Homepage is the website column verbatim
	Homepage string `json:"homepage"`

	// Twitter is the X/Twitter profile URL
	Twitter string `json:"twitter"`

	// GitHub is the GitHub organisation or repository URL
	GitHub string `json:"github"`
}

// HasLogo reports whether a logo was attached to the project.
func (p *Project) HasLogo() bool {
	return p.Links.Logo != ""
}
