package scene

import "github.com/lattice-ui/sceneforge/geom"

// FontWeight is one of the three weights spec.md §3 allows.
type FontWeight int

const (
	FontWeightLight FontWeight = iota
	FontWeightNormal
	FontWeightBold
)

// TextAlignment controls horizontal placement within a text node's frame.
type TextAlignment int

const (
	AlignLeading TextAlignment = iota
	AlignCenter
	AlignTrailing
	AlignJustified
)

// LineBreakMode controls how overflowing text is handled.
type LineBreakMode int

const (
	LineBreakWordWrap LineBreakMode = iota
	LineBreakCharWrap
	LineBreakClip
	LineBreakTruncateHead
	LineBreakTruncateTail
	LineBreakTruncateMiddle
)

// TextProperties is spec.md §3's TextProperties.
type TextProperties struct {
	FontFamily     string
	FontSize       float64 // px
	FontWeight     FontWeight
	Color          geom.Color
	Alignment      TextAlignment
	LineHeight     float64 // multiplier; 0 means "use 1.0"
	LetterSpacing  float64 // px
	MaxLines       int     // 0 means unbounded
	LineBreakMode  LineBreakMode
}

// LineHeightOrDefault returns LineHeight, defaulting to 1.0 when unset.
func (p TextProperties) LineHeightOrDefault() float64 {
	if p.LineHeight <= 0 {
		return 1.0
	}
	return p.LineHeight
}

// ImageScaleMode is spec.md §3's ImageProperties.scale_mode / §4.3's fit
// modes.
type ImageScaleMode int

const (
	ScaleFit ImageScaleMode = iota
	ScaleFill
	ScaleStretch
	ScaleCenter
)

// ImageProperties is spec.md §3's ImageProperties.
type ImageProperties struct {
	ScaleMode    ImageScaleMode
	AspectRatio  float64  // 0 means unset
	Opacity      *float64 // [0,1]; nil means unset, defaults to 1 via OpacityOrDefault
	TintColor    *geom.Color
	CornerRadius float64 // carried in the data model; compositor treats as out of scope per spec.md §1
}

// OpacityOrDefault returns *Opacity, treating an unset (nil) pointer as
// fully opaque — the DSL default, not "invisible by default". An explicit
// opacity: 0 is a valid, fully transparent value and is returned as-is.
func (p ImageProperties) OpacityOrDefault() float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

// ContainerProperties is spec.md §3's ContainerProperties.
type ContainerProperties struct {
	Background   geom.Color
	CornerRadius float64
	BorderWidth  float64
	BorderColor  geom.Color
	Opacity      *float64
	Padding      geom.EdgeInsets
}

// OpacityOrDefault mirrors ImageProperties.OpacityOrDefault (SPEC_FULL.md
// §5's opacity-compounding extension).
func (p ContainerProperties) OpacityOrDefault() float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

// StackAlignment is spec.md §3's StackProperties.alignment union across
// both VStack and HStack (the inapplicable half of the enum is a no-op for
// a given axis, per spec.md §4.1 "Stacking").
type StackAlignment int

const (
	StackAlignLeading StackAlignment = iota
	StackAlignCenter
	StackAlignTrailing
	StackAlignTop
	StackAlignBottom
	StackAlignFirstBaseline
	StackAlignLastBaseline
)

// StackDistribution is spec.md §3's StackProperties.distribution.
type StackDistribution int

const (
	DistributeFill StackDistribution = iota
	DistributeFillEqually
	DistributeFillProportionally
	DistributeEqualSpacing
	DistributeEqualCentering
)

// StackProperties is spec.md §3's StackProperties, used by the
// Auto-Layout stacking path (VStack/HStack implicit ordering rules).
// ZStack ignores Spacing/Distribution (children overlay with no implicit
// ordering).
type StackProperties struct {
	Spacing      float64
	Alignment    StackAlignment
	Distribution StackDistribution
}
