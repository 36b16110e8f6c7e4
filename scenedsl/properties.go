package scenedsl

import (
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
)

func str(m map[string]interface{}, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func num(m map[string]interface{}, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// numPtr returns nil when key is absent, and a pointer to its numeric
// value otherwise — used for fields (like opacity) where 0 is a distinct,
// valid value from "unset".
func numPtr(m map[string]interface{}, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

func buildTextProperties(m map[string]interface{}) (scene.TextProperties, error) {
	color, err := parseColorValue(m["color"], geom.Color{A: 255})
	if err != nil {
		return scene.TextProperties{}, err
	}
	return scene.TextProperties{
		FontFamily:    str(m, "fontFamily", ""),
		FontSize:      num(m, "fontSize", 16),
		FontWeight:    fontWeightFromString(str(m, "fontWeight", "normal")),
		Color:         color,
		Alignment:     textAlignFromString(str(m, "alignment", "leading")),
		LineHeight:    num(m, "lineHeight", 0),
		LetterSpacing: num(m, "letterSpacing", 0),
		MaxLines:      int(num(m, "maxLines", 0)),
		LineBreakMode: lineBreakFromString(str(m, "lineBreakMode", "wordWrap")),
	}, nil
}

func buildImageProperties(m map[string]interface{}) (scene.ImageProperties, error) {
	var tint *geom.Color
	if raw, ok := m["tintColor"]; ok {
		c, err := parseColorValue(raw, geom.Color{A: 255})
		if err != nil {
			return scene.ImageProperties{}, err
		}
		tint = &c
	}
	return scene.ImageProperties{
		ScaleMode:    scaleModeFromString(str(m, "scaleMode", "fit")),
		AspectRatio:  num(m, "aspectRatio", 0),
		Opacity:      numPtr(m, "opacity"),
		TintColor:    tint,
		CornerRadius: num(m, "cornerRadius", 0),
	}, nil
}

func buildContainerProperties(m map[string]interface{}) (scene.ContainerProperties, error) {
	bg, err := parseColorValue(m["background"], geom.Color{})
	if err != nil {
		return scene.ContainerProperties{}, err
	}
	border, err := parseColorValue(m["borderColor"], geom.Color{})
	if err != nil {
		return scene.ContainerProperties{}, err
	}
	return scene.ContainerProperties{
		Background:   bg,
		CornerRadius: num(m, "cornerRadius", 0),
		BorderWidth:  num(m, "borderWidth", 0),
		BorderColor:  border,
		Opacity:      numPtr(m, "opacity"),
		Padding:      paddingFromMap(m["padding"]),
	}, nil
}

func paddingFromMap(v interface{}) geom.EdgeInsets {
	switch t := v.(type) {
	case float64:
		return geom.EdgeInsets{Top: t, Right: t, Bottom: t, Left: t}
	case map[string]interface{}:
		return geom.EdgeInsets{
			Top:    num(t, "top", 0),
			Right:  num(t, "right", 0),
			Bottom: num(t, "bottom", 0),
			Left:   num(t, "left", 0),
		}
	default:
		return geom.EdgeInsets{}
	}
}

func buildStackProperties(m map[string]interface{}) scene.StackProperties {
	return scene.StackProperties{
		Spacing:      num(m, "spacing", 0),
		Alignment:    stackAlignFromString(str(m, "alignment", "leading")),
		Distribution: distributionFromString(str(m, "distribution", "fill")),
	}
}

func flexDirectiveFromMap(m map[string]interface{}) scene.FlexDirective {
	axis := scene.FlexRow
	if str(m, "axis", "row") == "column" {
		axis = scene.FlexColumn
	}
	wrap := scene.FlexNoWrap
	if str(m, "wrap", "nowrap") == "wrap" {
		wrap = scene.FlexWrapOn
	}
	return scene.FlexDirective{
		Axis:         axis,
		Wrap:         wrap,
		Justify:      justifyFromString(str(m, "justify", "start")),
		AlignItems:   flexAlignFromString(str(m, "alignItems", "stretch")),
		AlignContent: flexAlignFromString(str(m, "alignContent", "stretch")),
		Gap:          num(m, "gap", 0),
	}
}

func flexItemFromMap(m map[string]interface{}) scene.FlexItemStyle {
	style := scene.NewFlexItemStyle()
	style.Grow = num(m, "grow", 0)
	style.Shrink = num(m, "shrink", 1)
	style.Basis = num(m, "basis", -1)
	style.MinLength = num(m, "minLength", 0)
	style.MaxLength = num(m, "maxLength", 0)
	style.Margin = paddingFromMap(m["margin"])
	if v, ok := m["alignSelf"].(string); ok {
		a := flexAlignFromString(v)
		style.AlignSelf = &a
	}
	if str(m, "position", "relative") == "absolute" {
		style.Position = scene.PositionAbsolute
	}
	style.Top = numPtr(m, "top")
	style.Right = numPtr(m, "right")
	style.Bottom = numPtr(m, "bottom")
	style.Left = numPtr(m, "left")
	return style
}

func fontWeightFromString(s string) scene.FontWeight {
	switch s {
	case "light":
		return scene.FontWeightLight
	case "bold":
		return scene.FontWeightBold
	default:
		return scene.FontWeightNormal
	}
}

func textAlignFromString(s string) scene.TextAlignment {
	switch s {
	case "center":
		return scene.AlignCenter
	case "trailing":
		return scene.AlignTrailing
	case "justified":
		return scene.AlignJustified
	default:
		return scene.AlignLeading
	}
}

func lineBreakFromString(s string) scene.LineBreakMode {
	switch s {
	case "charWrap":
		return scene.LineBreakCharWrap
	case "clip":
		return scene.LineBreakClip
	case "truncateHead":
		return scene.LineBreakTruncateHead
	case "truncateTail":
		return scene.LineBreakTruncateTail
	case "truncateMiddle":
		return scene.LineBreakTruncateMiddle
	default:
		return scene.LineBreakWordWrap
	}
}

func scaleModeFromString(s string) scene.ImageScaleMode {
	switch s {
	case "fill":
		return scene.ScaleFill
	case "stretch":
		return scene.ScaleStretch
	case "center":
		return scene.ScaleCenter
	default:
		return scene.ScaleFit
	}
}

func stackAlignFromString(s string) scene.StackAlignment {
	switch s {
	case "center":
		return scene.StackAlignCenter
	case "trailing":
		return scene.StackAlignTrailing
	case "top":
		return scene.StackAlignTop
	case "bottom":
		return scene.StackAlignBottom
	case "firstBaseline":
		return scene.StackAlignFirstBaseline
	case "lastBaseline":
		return scene.StackAlignLastBaseline
	default:
		return scene.StackAlignLeading
	}
}

func distributionFromString(s string) scene.StackDistribution {
	switch s {
	case "fillEqually":
		return scene.DistributeFillEqually
	case "fillProportionally":
		return scene.DistributeFillProportionally
	case "equalSpacing":
		return scene.DistributeEqualSpacing
	case "equalCentering":
		return scene.DistributeEqualCentering
	default:
		return scene.DistributeFill
	}
}

func justifyFromString(s string) scene.FlexJustify {
	switch s {
	case "end":
		return scene.JustifyEnd
	case "center":
		return scene.JustifyCenter
	case "spaceBetween":
		return scene.JustifySpaceBetween
	case "spaceAround":
		return scene.JustifySpaceAround
	case "spaceEvenly":
		return scene.JustifySpaceEvenly
	default:
		return scene.JustifyStart
	}
}

func flexAlignFromString(s string) scene.FlexAlign {
	switch s {
	case "flexStart":
		return scene.AlignFlexStart
	case "flexEnd":
		return scene.AlignFlexEnd
	case "center":
		return scene.AlignCenterCross
	case "baseline":
		return scene.AlignBaselineCross
	default:
		return scene.AlignStretch
	}
}
