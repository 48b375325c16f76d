// Package content loads the static copy shown by every page: the project
// header, the About sections, the Literature Review shelf, artifact
// collections and the onboarding notes.
package content

import (
	_ "embed"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/csheth/lockdam/internal/errs"
)

//go:embed site.yaml
var defaultDocument []byte

// DefaultPath names the embedded document in errors.
const DefaultPath = "<embedded site.yaml>"

// Site is the whole content document.
type Site struct {
	Project    Project      `yaml:"project" validate:"required"`
	Home       Home         `yaml:"home"`
	About      []Section    `yaml:"about" validate:"required,min=1,dive"`
	LitReview  LitReview    `yaml:"litreview" validate:"required"`
	Artifacts  []Collection `yaml:"artifacts" validate:"dive"`
	Onboarding []Note       `yaml:"onboarding" validate:"dive"`
}

// Project is the header repeated on the home page.
type Project struct {
	Title    string `yaml:"title" validate:"required"`
	Subtitle string `yaml:"subtitle"`
	Author   string `yaml:"author"`
	Course   string `yaml:"course"`
	Term     string `yaml:"term"`
	Place    string `yaml:"place" validate:"required"`
}

// Home holds the home page copy.
type Home struct {
	Blurb  string `yaml:"blurb"`
	Prompt string `yaml:"prompt"`
}

// Section is one numbered About section.
type Section struct {
	Title string `yaml:"title" validate:"required"`
	Body  string `yaml:"body" validate:"required"`
}

// LitReview is the Literature Review page.
type LitReview struct {
	Title string `yaml:"title" validate:"required"`
	Intro string `yaml:"intro"`
	Note  string `yaml:"note"`
	Books []Book `yaml:"books" validate:"required,min=1,dive"`
}

// Book is one reviewed source.
type Book struct {
	Title    string `yaml:"title" validate:"required"`
	Author   string `yaml:"author" validate:"required"`
	Year     int    `yaml:"year" validate:"gte=0"`
	Link     string `yaml:"link" validate:"omitempty,url"`
	LinkText string `yaml:"link_text" validate:"required_with=Link"`
	// SourcePDF is a URL or local path whose text can be excerpted.
	SourcePDF string `yaml:"source_pdf"`
	Body      string `yaml:"body" validate:"required"`
}

// Collection groups artifacts under one parent page.
type Collection struct {
	Title       string     `yaml:"title" validate:"required"`
	Slug        string     `yaml:"slug" validate:"required,slug"`
	Description string     `yaml:"description"`
	Items       []Artifact `yaml:"items" validate:"required,min=1,dive"`
}

// Artifact is one entry in a collection.
type Artifact struct {
	Name string `yaml:"name" validate:"required"`
	Body string `yaml:"body" validate:"required"`
}

// Note is one onboarding popup.
type Note struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	spacePattern = regexp.MustCompile(`\s+`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Slugify lower-cases name and joins its words with dashes.
func Slugify(name string) string {
	return spacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Slug names the book in caches and logs.
func (b Book) Slug() string {
	return Slugify(b.Title)
}

// Slug is the route segment for the artifact.
func (a Artifact) Slug() string {
	return Slugify(a.Name)
}

// Find returns the index of the artifact whose slug or name matches key.
func (c Collection) Find(key string) (int, bool) {
	key = Slugify(key)
	for i, item := range c.Items {
		if item.Slug() == key {
			return i, true
		}
	}
	return 0, false
}

// Default returns the embedded document.
func Default() (*Site, error) {
	return Parse(DefaultPath, defaultDocument)
}

// Load reads path, or the embedded document when path is empty.
func Load(path string) (*Site, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewParseError(path, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates a content document. path is only used in
// errors.
func Parse(path string, data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, errs.NewParseError(path, err)
	}
	if err := validatorInstance().Struct(&site); err != nil {
		return nil, errs.FromValidator("content", err)
	}
	return &site, nil
}
