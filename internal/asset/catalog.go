package asset

import (
	"errors"
	"fmt"

	img "github.com/phantom-wg/phantom-www/internal/image"
)

// Master file names read from the input directory.
const (
	HorizontalMaster = "phantom-horizontal-master.svg"
	VerticalMaster   = "phantom-vertical-master.svg"
	IconMaster       = "phantom-icon-master.svg"
)

// Orientation names, used as logo output directories.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// IconSize is one square icon in a platform category.
type IconSize struct {
	Name string
	Size int
}

// IconCategory groups icons written to icons/{Name}/.
type IconCategory struct {
	Name  string
	Sizes []IconSize
}

// LogoSize is a named logo target with exactly one fixed side.
type LogoSize struct {
	Name  string
	Label string
	Box   img.Box
}

// LogoOrientation describes one logo master and its sizes.
type LogoOrientation struct {
	Name   string
	Master string
	Sizes  []LogoSize
}

// Catalog lists everything the pack builders generate.
type Catalog struct {
	IconFormats    []img.Format
	IconCategories []IconCategory
	// ContainerCategory and ContainerName place the favicon container.
	ContainerCategory string
	ContainerName     string
	ContainerSizes    []int

	LogoFormats      []img.Format
	LogoOrientations []LogoOrientation
}

// DefaultCatalog returns the stock icon and logo tables.
func DefaultCatalog() Catalog {
	return Catalog{
		IconFormats: append([]img.Format(nil), img.RasterFormats...),
		IconCategories: []IconCategory{
			{Name: "favicons", Sizes: []IconSize{
				{"favicon-16", 16},
				{"favicon-32", 32},
				{"favicon-48", 48},
				{"favicon-96", 96},
				{"favicon-192", 192},
			}},
			{Name: "ios", Sizes: []IconSize{
				{"apple-touch-icon-180", 180},
				{"apple-touch-icon-152", 152},
				{"apple-touch-icon-120", 120},
				{"apple-touch-icon-76", 76},
				{"apple-touch-icon-60", 60},
			}},
			{Name: "android", Sizes: []IconSize{
				{"android-chrome-512", 512},
				{"android-chrome-192", 192},
				{"android-chrome-144", 144},
				{"android-chrome-96", 96},
				{"android-chrome-72", 72},
				{"android-chrome-48", 48},
			}},
		},
		ContainerCategory: "favicons",
		ContainerName:     "favicon.ico",
		ContainerSizes:    []int{16, 32, 48},

		LogoFormats: append([]img.Format(nil), img.RasterFormats...),
		LogoOrientations: []LogoOrientation{
			{Name: Horizontal, Master: HorizontalMaster, Sizes: []LogoSize{
				{"logo-h-small", "small", img.Width(200)},
				{"logo-h-medium", "medium", img.Width(300)},
				{"logo-h-large", "large", img.Width(400)},
				{"logo-h-xlarge", "xlarge", img.Width(600)},
			}},
			{Name: Vertical, Master: VerticalMaster, Sizes: []LogoSize{
				{"logo-v-small", "small", img.Height(150)},
				{"logo-v-medium", "medium", img.Height(200)},
				{"logo-v-large", "large", img.Height(300)},
				{"logo-v-xlarge", "xlarge", img.Height(400)},
			}},
		},
	}
}

// MasterFiles returns the master file names in processing order.
func (c Catalog) MasterFiles() []string {
	files := make([]string, 0, len(c.LogoOrientations)+1)
	for _, o := range c.LogoOrientations {
		files = append(files, o.Master)
	}
	return append(files, IconMaster)
}

// CategoryNames returns the icon category names in order.
func (c Catalog) CategoryNames() []string {
	names := make([]string, len(c.IconCategories))
	for i, cat := range c.IconCategories {
		names[i] = cat.Name
	}
	return names
}

// OrientationNames returns the logo orientation names in order.
func (c Catalog) OrientationNames() []string {
	names := make([]string, len(c.LogoOrientations))
	for i, o := range c.LogoOrientations {
		names[i] = o.Name
	}
	return names
}

// IconFileCount is the number of files one icon pack writes when nothing fails.
func (c Catalog) IconFileCount() int {
	n := 0
	for _, cat := range c.IconCategories {
		n += len(cat.Sizes) * len(c.IconFormats)
	}
	return n + 1
}

// Validate checks that every table is usable before any work starts.
func (c Catalog) Validate() error {
	if err := validateFormats("icon", c.IconFormats); err != nil {
		return err
	}
	if err := validateFormats("logo", c.LogoFormats); err != nil {
		return err
	}
	if c.ContainerName == "" || c.ContainerCategory == "" {
		return errors.New("icon container location is not set")
	}
	if len(c.ContainerSizes) == 0 {
		return errors.New("icon container has no sizes")
	}
	for _, s := range c.ContainerSizes {
		if s < 1 || s > 256 {
			return fmt.Errorf("icon container size %d out of range 1..256", s)
		}
	}

	seen := make(map[string]bool)
	for _, cat := range c.IconCategories {
		if cat.Name == "" {
			return errors.New("icon category without a name")
		}
		for _, s := range cat.Sizes {
			if err := img.Square(s.Size).Validate(); err != nil {
				return fmt.Errorf("icon %s/%s: %w", cat.Name, s.Name, err)
			}
			key := cat.Name + "/" + s.Name
			if s.Name == "" || seen[key] {
				return fmt.Errorf("icon name %q is empty or duplicated", key)
			}
			seen[key] = true
		}
	}

	for _, o := range c.LogoOrientations {
		if o.Name == "" || o.Master == "" {
			return errors.New("logo orientation without a name or master")
		}
		for _, s := range o.Sizes {
			if err := s.Box.Validate(); err != nil {
				return fmt.Errorf("logo %s/%s: %w", o.Name, s.Name, err)
			}
			if s.Box.Width != 0 && s.Box.Height != 0 {
				return fmt.Errorf("logo %s/%s: set exactly one of width or height", o.Name, s.Name)
			}
			key := "logo:" + o.Name + "/" + s.Name
			if s.Name == "" || seen[key] {
				return fmt.Errorf("logo name %q is empty or duplicated", key)
			}
			seen[key] = true
		}
	}
	return nil
}

func validateFormats(kind string, formats []img.Format) error {
	if len(formats) == 0 {
		return fmt.Errorf("no %s formats configured", kind)
	}
	seen := make(map[img.Format]bool)
	for _, f := range formats {
		if !f.IsRaster() {
			return fmt.Errorf("%s format %s: %w", kind, f, img.ErrUnsupportedFormat)
		}
		if seen[f] {
			return fmt.Errorf("%s format %s listed twice", kind, f)
		}
		seen[f] = true
	}
	return nil
}
