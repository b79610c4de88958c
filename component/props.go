package component

// Size is the width class of a modal dialog.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// ModalProps describes one modal dialog.
type ModalProps struct {
	ID    string
	Title string
	Size  Size // defaults to SizeMedium
	Class string
	// Body fills the scrollable .modal-body region.
	Body Markup
	// Footer is optional.
	Footer Markup
}

// TriggerProps describes a button that opens a modal.
type TriggerProps struct {
	ID      string
	ModalID string
	Label   string
	Class   string
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Href  string
	Label string
}

// Filter is one project filter button.
type Filter struct {
	Value string
	Label string
}

// Project is one card in the project grid.
type Project struct {
	Title   string
	Type    string
	Summary string
	Image   string
	// PostID names the modal holding the project write-up, if any.
	PostID string
}

// Post is a blog entry shown in its own modal.
type Post struct {
	ID    string
	Title string
	Date  string
	Body  []string
}

// PortfolioProps is the content of a whole portfolio page.
type PortfolioProps struct {
	Name       string
	Tagline    string
	Stylesheet string
	Favicon    string
	Links      []NavLink
	Filters    []Filter
	Projects   []Project
	Posts      []Post
}

// DefaultPortfolio returns the demo content used by the scaffold.
func DefaultPortfolio() PortfolioProps {
	return PortfolioProps{
		Name:       "Jamie Rivera",
		Tagline:    "Backend engineer building small, sturdy services.",
		Stylesheet: "/static/style.css",
		Favicon:    "/static/favicon.svg",
		Links: []NavLink{
			{Href: "index.html", Label: "Home"},
			{Href: "projects.html", Label: "Projects"},
			{Href: "blog.html", Label: "Blog"},
		},
		Filters: []Filter{
			{Value: "all", Label: "All"},
			{Value: "web", Label: "Web"},
			{Value: "data", Label: "Data"},
		},
		Projects: []Project{
			{Title: "Link Shortener", Type: "web", Summary: "A tiny URL service with click analytics.", Image: "/static/img/links.png", PostID: "post-links"},
			{Title: "Sensor Pipeline", Type: "data", Summary: "Streaming ingestion for home sensors.", Image: "/static/img/sensors.png"},
			{Title: "Recipe Box", Type: "web", Summary: "Offline-first recipe manager.", Image: "/static/img/recipes.png"},
		},
		Posts: []Post{
			{
				ID:    "post-links",
				Title: "Building a link shortener",
				Date:  "2026-03-14",
				Body: []string{
					"Short codes are base62 encoded counters.",
					"Redirects are served from memory and flushed to disk in batches.",
				},
			},
			{
				ID:    "post-testing",
				Title: "Testing without a browser",
				Date:  "2026-05-02",
				Body: []string{
					"Most page behavior is plain state transitions over a document tree.",
				},
			},
		},
	}
}
