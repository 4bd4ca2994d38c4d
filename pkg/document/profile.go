package document

import (
	"strconv"
	"strings"
)

// Profile is a fully resolved set of visual parameters for a document. Font
// sizes are points, geometry is millimetres, colours are #RRGGBB. A negative
// X position is measured from the right edge of the page. Positions are
// pointers so that 0 places an element on the page edge while nil leaves it
// at the default.
type Profile struct {
	HeaderFontSize       float64 `json:"header_font_size" validate:"gte=0,lte=72"`
	CompanyNameFontSize  float64 `json:"company_name_font_size" validate:"gte=0,lte=72"`
	DateFontSize         float64 `json:"date_font_size" validate:"gte=0,lte=48"`
	GreetingFontSize     float64 `json:"greeting_font_size" validate:"gte=0,lte=48"`
	SectionTitleFontSize float64 `json:"section_title_font_size" validate:"gte=0,lte=48"`
	ContentFontSize      float64 `json:"content_font_size" validate:"gte=0,lte=48"`
	SpecsFontSize        float64 `json:"specs_font_size" validate:"gte=0,lte=48"`
	PricingFontSize      float64 `json:"pricing_font_size" validate:"gte=0,lte=48"`
	AmountWordsFontSize  float64 `json:"amount_words_font_size" validate:"gte=0,lte=48"`
	SignatureFontSize    float64 `json:"signature_font_size" validate:"gte=0,lte=48"`
	FooterFontSize       float64 `json:"footer_font_size" validate:"gte=0,lte=48"`

	HeaderBackgroundColor   string `json:"header_background_color" validate:"omitempty,hexcolor"`
	HeaderTextColor         string `json:"header_text_color" validate:"omitempty,hexcolor"`
	CompanyNameColor        string `json:"company_name_color" validate:"omitempty,hexcolor"`
	SectionTitleColor       string `json:"section_title_color" validate:"omitempty,hexcolor"`
	AmountWordsColor        string `json:"amount_words_color" validate:"omitempty,hexcolor"`
	FooterBackgroundColor   string `json:"footer_background_color" validate:"omitempty,hexcolor"`
	FooterTextColor         string `json:"footer_text_color" validate:"omitempty,hexcolor"`
	GreetingBackgroundColor string `json:"greeting_background_color" validate:"omitempty,hexcolor"`
	BoxBackgroundColor      string `json:"box_background_color" validate:"omitempty,hexcolor"`
	BorderColor             string `json:"border_color" validate:"omitempty,hexcolor"`
	TextColor               string `json:"text_color" validate:"omitempty,hexcolor"`

	LogoWidth        float64  `json:"logo_width" validate:"gte=0,lte=210"`
	LogoHeight       float64  `json:"logo_height" validate:"gte=0,lte=297"`
	LogoPositionX    *float64 `json:"logo_position_x" validate:"omitempty,gte=-210,lte=210"`
	LogoPositionY    *float64 `json:"logo_position_y" validate:"omitempty,gte=0,lte=297"`
	ShowWatermark    *bool    `json:"show_watermark"`
	WatermarkOpacity float64  `json:"watermark_opacity" validate:"gte=0,lte=1"`
	WatermarkSize    float64  `json:"watermark_size" validate:"gte=0,lte=210"`
	StampWidth       float64  `json:"stamp_width" validate:"gte=0,lte=100"`
	StampHeight      float64  `json:"stamp_height" validate:"gte=0,lte=100"`
	QRSize           float64  `json:"qr_size" validate:"gte=0,lte=100"`

	MarginLeft     float64 `json:"margin_left" validate:"gte=0,lte=50"`
	MarginRight    float64 `json:"margin_right" validate:"gte=0,lte=50"`
	HeaderHeight   float64 `json:"header_height" validate:"gte=0,lte=120"`
	FooterHeight   float64 `json:"footer_height" validate:"gte=0,lte=60"`
	SectionSpacing float64 `json:"section_spacing" validate:"gte=0,lte=30"`
	LineHeight     float64 `json:"line_height" validate:"gte=0,lte=20"`

	DatePositionX            *float64 `json:"date_position_x" validate:"omitempty,gte=-210,lte=210"`
	DatePositionY            *float64 `json:"date_position_y" validate:"omitempty,gte=0,lte=297"`
	QuotationNumberPositionX *float64 `json:"quotation_number_position_x" validate:"omitempty,gte=-210,lte=210"`
	QuotationNumberPositionY *float64 `json:"quotation_number_position_y" validate:"omitempty,gte=0,lte=297"`
	GreetingPositionY        float64  `json:"greeting_position_y" validate:"gte=0,lte=297"`
}

// DefaultProfile returns the built-in profile used when no stored profile
// exists and to fill the unset fields of stored ones.
func DefaultProfile() *Profile {
	show := true
	return &Profile{
		HeaderFontSize:       22,
		CompanyNameFontSize:  16,
		DateFontSize:         10,
		GreetingFontSize:     11,
		SectionTitleFontSize: 12,
		ContentFontSize:      10,
		SpecsFontSize:        9,
		PricingFontSize:      10,
		AmountWordsFontSize:  10,
		SignatureFontSize:    10,
		FooterFontSize:       9,

		HeaderBackgroundColor:   "#1E3A8A",
		HeaderTextColor:         "#FFFFFF",
		CompanyNameColor:        "#FFFFFF",
		SectionTitleColor:       "#1E3A8A",
		AmountWordsColor:        "#B91C1C",
		FooterBackgroundColor:   "#1E3A8A",
		FooterTextColor:         "#FFFFFF",
		GreetingBackgroundColor: "#F3F4F6",
		BoxBackgroundColor:      "#F9FAFB",
		BorderColor:             "#D1D5DB",
		TextColor:               "#111827",

		LogoWidth:        35,
		LogoHeight:       25,
		LogoPositionX:    mm(12),
		LogoPositionY:    mm(8),
		ShowWatermark:    &show,
		WatermarkOpacity: 0.08,
		WatermarkSize:    120,
		StampWidth:       32,
		StampHeight:      32,
		QRSize:           30,

		MarginLeft:     12,
		MarginRight:    12,
		HeaderHeight:   45,
		FooterHeight:   15,
		SectionSpacing: 4,
		LineHeight:     5,

		DatePositionX:            mm(-12),
		DatePositionY:            mm(35),
		QuotationNumberPositionX: mm(12),
		QuotationNumberPositionY: mm(35),
		GreetingPositionY:        0,
	}
}

// Normalize fills every unset or invalid field from DefaultProfile. A zero
// size, a nil position or an empty colour counts as unset. A nil profile
// yields the defaults.
func (p *Profile) Normalize() *Profile {
	def := DefaultProfile()
	if p == nil {
		return def
	}
	out := *p

	num := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	pos := func(v **float64, d *float64) {
		if *v == nil {
			*v = d
		}
	}
	col := func(v *string, d string) {
		if c, ok := normalizeHex(*v); ok {
			*v = c
			return
		}
		*v = d
	}

	num(&out.HeaderFontSize, def.HeaderFontSize)
	num(&out.CompanyNameFontSize, def.CompanyNameFontSize)
	num(&out.DateFontSize, def.DateFontSize)
	num(&out.GreetingFontSize, def.GreetingFontSize)
	num(&out.SectionTitleFontSize, def.SectionTitleFontSize)
	num(&out.ContentFontSize, def.ContentFontSize)
	num(&out.SpecsFontSize, def.SpecsFontSize)
	num(&out.PricingFontSize, def.PricingFontSize)
	num(&out.AmountWordsFontSize, def.AmountWordsFontSize)
	num(&out.SignatureFontSize, def.SignatureFontSize)
	num(&out.FooterFontSize, def.FooterFontSize)

	col(&out.HeaderBackgroundColor, def.HeaderBackgroundColor)
	col(&out.HeaderTextColor, def.HeaderTextColor)
	col(&out.CompanyNameColor, def.CompanyNameColor)
	col(&out.SectionTitleColor, def.SectionTitleColor)
	col(&out.AmountWordsColor, def.AmountWordsColor)
	col(&out.FooterBackgroundColor, def.FooterBackgroundColor)
	col(&out.FooterTextColor, def.FooterTextColor)
	col(&out.GreetingBackgroundColor, def.GreetingBackgroundColor)
	col(&out.BoxBackgroundColor, def.BoxBackgroundColor)
	col(&out.BorderColor, def.BorderColor)
	col(&out.TextColor, def.TextColor)

	num(&out.LogoWidth, def.LogoWidth)
	num(&out.LogoHeight, def.LogoHeight)
	pos(&out.LogoPositionX, def.LogoPositionX)
	pos(&out.LogoPositionY, def.LogoPositionY)
	if out.ShowWatermark == nil {
		out.ShowWatermark = def.ShowWatermark
	}
	if out.WatermarkOpacity <= 0 || out.WatermarkOpacity > 1 {
		out.WatermarkOpacity = def.WatermarkOpacity
	}
	num(&out.WatermarkSize, def.WatermarkSize)
	num(&out.StampWidth, def.StampWidth)
	num(&out.StampHeight, def.StampHeight)
	num(&out.QRSize, def.QRSize)

	num(&out.MarginLeft, def.MarginLeft)
	num(&out.MarginRight, def.MarginRight)
	num(&out.HeaderHeight, def.HeaderHeight)
	num(&out.FooterHeight, def.FooterHeight)
	num(&out.SectionSpacing, def.SectionSpacing)
	num(&out.LineHeight, def.LineHeight)

	pos(&out.DatePositionX, def.DatePositionX)
	pos(&out.DatePositionY, def.DatePositionY)
	pos(&out.QuotationNumberPositionX, def.QuotationNumberPositionX)
	pos(&out.QuotationNumberPositionY, def.QuotationNumberPositionY)

	return &out
}

func mm(v float64) *float64 { return &v }

// at returns a resolved position. Normalize guarantees it is set.
func at(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// WatermarkEnabled reports whether the logo watermark should be drawn.
func (p *Profile) WatermarkEnabled() bool {
	return p.ShowWatermark != nil && *p.ShowWatermark
}

type rgb struct{ r, g, b int }

// normalizeHex accepts #RGB or #RRGGBB and returns the upper-case long form.
func normalizeHex(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToUpper(s), true
}

func parseColor(s string) rgb {
	hex, ok := normalizeHex(s)
	if !ok {
		return rgb{}
	}
	v, _ := strconv.ParseUint(hex[1:], 16, 32)
	return rgb{r: int(v >> 16 & 0xFF), g: int(v >> 8 & 0xFF), b: int(v & 0xFF)}
}
