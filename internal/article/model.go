// Package article defines the normalized article data model and the loader
// that produces it from YAML or JSON input files.
package article

// Meta holds the summary metadata of a single article. Slug doubles as the
// output filename stem and the manifest key.
type Meta struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	HeroImage   string   `json:"hero_image,omitempty"`
	CoverCredit string   `json:"cover_credit,omitempty"`
}

// Review is a single reader review attached to an article.
//
// Rating is a pointer so an absent rating survives normalization as nil
// rather than collapsing to zero.
type Review struct {
	Author  string
	Rating  *float64
	Date    string
	Content string
	Pros    []string
	Cons    []string
	Images  []string
}

// Data is the full normalized payload of one input file. It is rebuilt from
// the source file on every run and never persisted.
type Data struct {
	Article    Meta
	Reviews    []Review
	GalleryDir string
}
