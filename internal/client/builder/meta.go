package builder

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

type ThemePreset struct {
	Name  string
	Theme models.Theme
}

var Themes = []ThemePreset{
	{Name: "Ocean Blue", Theme: models.DefaultTheme},
	{Name: "Forest Green", Theme: models.Theme{Primary: "#34C759", Secondary: "#52D376", Accent: "#2A9D4A"}},
	{Name: "Sunset Orange", Theme: models.Theme{Primary: "#FF9500", Secondary: "#FFB340", Accent: "#CC7700"}},
	{Name: "Royal Purple", Theme: models.Theme{Primary: "#AF52DE", Secondary: "#C77EE8", Accent: "#8C42B8"}},
	{Name: "Rose Pink", Theme: models.Theme{Primary: "#FF2D55", Secondary: "#FF5A7A", Accent: "#CC2444"}},
	{Name: "Slate Gray", Theme: models.Theme{Primary: "#8E8E93", Secondary: "#AEAEB2", Accent: "#636366"}},
}

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// LookupTheme finds a preset by case-insensitive name.
func LookupTheme(name string) (models.Theme, bool) {
	for _, p := range Themes {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p.Theme, true
		}
	}
	return models.Theme{}, false
}

func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// AddTag stores the trimmed, lower-cased tag. Blank and duplicate tags are
// refused.
func (b *Builder) AddTag(tag string) (models.Draft, error) {
	tag = NormalizeTag(tag)
	if tag == "" {
		return b.draft, ErrEmptyTag
	}
	if slices.Contains(b.draft.Tags, tag) {
		return b.draft, fmt.Errorf("%w: %s", ErrDuplicateTag, tag)
	}

	d := b.draft
	d.Tags = append(slices.Clip(d.Tags), tag)
	return b.set(d), nil
}

func (b *Builder) RemoveTag(tag string) models.Draft {
	tag = NormalizeTag(tag)
	d := b.draft
	d.Tags = slices.DeleteFunc(slices.Clone(d.Tags), func(t string) bool { return t == tag })
	return b.set(d)
}

func (b *Builder) SetTitle(title string) models.Draft {
	d := b.draft
	d.Title = title
	return b.set(d)
}

func (b *Builder) SetDescription(desc string) models.Draft {
	d := b.draft
	d.Description = desc
	return b.set(d)
}

// SetPricing sets the price type and the entered decimal price. The price
// itself is checked at publish time.
func (b *Builder) SetPricing(pt models.PriceType, price string) (models.Draft, error) {
	if pt != models.PriceFree && pt != models.PricePaid {
		return b.draft, fmt.Errorf("%w: %q", ErrUnknownPrice, pt)
	}
	d := b.draft
	d.PriceType = pt
	d.Price = strings.TrimSpace(price)
	return b.set(d), nil
}

func (b *Builder) SetThemePreset(name string) (models.Draft, error) {
	theme, ok := LookupTheme(name)
	if !ok {
		return b.draft, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	d := b.draft
	d.Theme = theme
	return b.set(d), nil
}

func (b *Builder) SetCustomTheme(primary, secondary, accent string) (models.Draft, error) {
	colors := []string{strings.TrimSpace(primary), strings.TrimSpace(secondary), strings.TrimSpace(accent)}
	for _, c := range colors {
		if c == "" {
			return b.draft, ErrIncompleteTheme
		}
		if !colorRe.MatchString(c) {
			return b.draft, fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}

	d := b.draft
	d.Theme = models.Theme{Primary: colors[0], Secondary: colors[1], Accent: colors[2]}
	return b.set(d), nil
}

// SetImage sets or, with nil, clears the cover image.
func (b *Builder) SetImage(img *models.Attachment) models.Draft {
	d := b.draft
	d.Image = img
	return b.set(d)
}

func (b *Builder) SetBannerImage(img *models.Attachment) models.Draft {
	d := b.draft
	d.BannerImage = img
	return b.set(d)
}
