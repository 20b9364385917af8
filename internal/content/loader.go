package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// CourseFile is the name of the course metadata file in a content directory.
const CourseFile = "course.yml"

// DayPattern matches the day files below a content directory.
const DayPattern = "days/**/*.{yml,yaml}"

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

//go:embed sample/course.yml sample/days/*.yml
var sampleFS embed.FS

// Sample returns the course bundled with the binary.
func Sample() (*Course, error) {
	sub, err := fs.Sub(sampleFS, "sample")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// Load reads a course from a content directory on disk.
func Load(dir string) (*Course, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads course.yml and every day file from fsys and validates the
// result. Days are ordered by their day number.
func LoadFS(fsys fs.FS) (*Course, error) {
	data, err := fs.ReadFile(fsys, CourseFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", CourseFile, err)
	}
	var course Course
	if err := yaml.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", CourseFile, err)
	}

	paths, err := doublestar.Glob(fsys, DayPattern)
	if err != nil {
		return nil, fmt.Errorf("matching day files: %w", err)
	}
	sort.Strings(paths)

	for _, p := range paths {
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		var day Day
		if err := yaml.Unmarshal(raw, &day); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		course.Days = append(course.Days, day)
	}

	sort.SliceStable(course.Days, func(i, j int) bool {
		return course.Days[i].Number < course.Days[j].Number
	})

	if err := course.Validate(); err != nil {
		return nil, err
	}
	return &course, nil
}

// Validate checks the registry invariants: unique day slugs that are valid
// path segments, and per day a non-empty session list whose ids run 1..n in
// display order.
func (c *Course) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("course title is required")
	}
	if len(c.Days) == 0 {
		return fmt.Errorf("course %q has no days", c.Title)
	}
	seen := make(map[string]bool, len(c.Days))
	for i := range c.Days {
		d := &c.Days[i]
		if !slugPattern.MatchString(d.Slug) {
			return fmt.Errorf("day %d: invalid slug %q", d.Number, d.Slug)
		}
		if seen[d.Slug] {
			return fmt.Errorf("duplicate day slug %q", d.Slug)
		}
		seen[d.Slug] = true
		if err := d.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Day) validate() error {
	if len(d.Sessions) == 0 {
		return fmt.Errorf("day %s has no sessions", d.Slug)
	}
	for i, s := range d.Sessions {
		if s.ID != i+1 {
			return fmt.Errorf("day %s: session %q has id %d, want %d", d.Slug, s.Title, s.ID, i+1)
		}
		if s.Title == "" {
			return fmt.Errorf("day %s: session %d has no title", d.Slug, s.ID)
		}
	}
	return nil
}
