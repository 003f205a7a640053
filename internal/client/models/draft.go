package models

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Step is an ordered, named container of blocks. IsOpen only drives the
// editor and is never exported.
type Step struct {
	ID     string
	Name   string
	IsOpen bool
	Blocks []Block
}

type stepJSON struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	IsOpen bool            `json:"isOpen"`
	Blocks []BlockEnvelope `json:"blocks"`
}

func (s Step) MarshalJSON() ([]byte, error) {
	out := stepJSON{ID: s.ID, Name: s.Name, IsOpen: s.IsOpen, Blocks: make([]BlockEnvelope, 0, len(s.Blocks))}
	for _, b := range s.Blocks {
		out.Blocks = append(out.Blocks, WrapBlock(b))
	}
	return json.Marshal(out)
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var in stepJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	blocks := make([]Block, 0, len(in.Blocks))
	for _, env := range in.Blocks {
		b, err := env.Unwrap()
		if err != nil {
			return err
		}
		blocks = append(blocks, b)
	}

	*s = Step{ID: in.ID, Name: in.Name, IsOpen: in.IsOpen, Blocks: blocks}
	return nil
}

type PriceType string

const (
	PriceFree PriceType = "free"
	PricePaid PriceType = "paid"
)

type Theme struct {
	Primary   string `json:"primaryColor"`
	Secondary string `json:"secondaryColor"`
	Accent    string `json:"accentColor"`
}

// DefaultTheme is the Ocean Blue preset.
var DefaultTheme = Theme{Primary: "#007AFF", Secondary: "#4A90E2", Accent: "#376BB2"}

// Attachment is an image carried either inline (Data) or as an uploaded
// object (URL).
type Attachment struct {
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Draft is the blueprint under edit. Drafts are values: the builder never
// mutates a slice it has already handed out.
type Draft struct {
	Steps       []Step      `json:"steps"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PriceType   PriceType   `json:"priceType"`
	Price       string      `json:"price"`
	Tags        []string    `json:"tags"`
	Image       *Attachment `json:"image,omitempty"`
	BannerImage *Attachment `json:"bannerImage,omitempty"`
	Theme       Theme       `json:"theme"`
}

func NewDraft() Draft {
	return Draft{
		Steps:     []Step{},
		PriceType: PriceFree,
		Tags:      []string{},
		Theme:     DefaultTheme,
	}
}

func (d Draft) IsFree() bool {
	return d.PriceType != PricePaid
}

// PriceCents converts the entered decimal price to cents, rounding to the
// nearest cent. Free drafts and unparsable prices yield 0.
func (d Draft) PriceCents() uint64 {
	if d.IsFree() {
		return 0
	}
	return ParseCents(d.Price)
}

// MaxPriceCents caps a paid price at one million in the store currency.
const MaxPriceCents uint64 = 100_000_000

var decimalPrice = regexp.MustCompile(`^([0-9]+)(?:\.([0-9]+))?$`)

// ParseCents reads a plain decimal ("29.99", "5") and rounds it half up to
// whole cents. Exponents, signs, hex floats and amounts above MaxPriceCents
// yield 0.
func ParseCents(price string) uint64 {
	m := decimalPrice.FindStringSubmatch(strings.TrimSpace(price))
	if m == nil {
		return 0
	}

	whole := strings.TrimLeft(m[1], "0")
	if len(whole) > 7 {
		return 0
	}
	units, _ := strconv.ParseUint("0"+whole, 10, 64)

	frac := m[2] + "000"
	cents := units*100 + uint64(frac[0]-'0')*10 + uint64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}

	if cents > MaxPriceCents {
		return 0
	}
	return cents
}

// HasBlocks reports whether at least one step carries a block.
func (d Draft) HasBlocks() bool {
	for _, s := range d.Steps {
		if len(s.Blocks) > 0 {
			return true
		}
	}
	return false
}
