// Package scenedsl is sceneforge's external DSL adapter, per spec.md §6:
// it decodes the YAML schema the example repositories use into a
// scene.Tree, and nowhere else in the module does YAML or raw map
// decoding appear. Grounded on
// original_source/flex_layout_render_test/src/parser/yaml_parser.rs for
// the schema shape (container/children nesting, per-type style blocks)
// and on dshills-dungo's YAML-driven scene definitions for the
// gopkg.in/yaml.v3 decoding idiom used elsewhere in the pack.
package scenedsl

import (
	"fmt"

	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
	"github.com/lattice-ui/sceneforge/sferr"
	"gopkg.in/yaml.v3"
)

type docRoot struct {
	Canvas   docCanvas  `yaml:"canvas"`
	Elements []docNode  `yaml:"elements"`
}

type docCanvas struct {
	Width      float64     `yaml:"width"`
	Height     float64     `yaml:"height"`
	Background interface{} `yaml:"background"`
}

type docNode struct {
	Type        string                 `yaml:"type"`
	ID          string                 `yaml:"id"`
	Content     string                 `yaml:"content"`
	Source      string                 `yaml:"source"`
	Properties  map[string]interface{} `yaml:"properties"`
	Constraints []docConstraint        `yaml:"constraints"`
	Children    []docNode              `yaml:"children"`
	Flex        map[string]interface{} `yaml:"flex"`
}

type docConstraint struct {
	Type     string      `yaml:"type"`
	Target   *string     `yaml:"target"`
	Constant *float64    `yaml:"constant"`
	Value    interface{} `yaml:"value"`
	Priority string      `yaml:"priority"`
}

// Load parses yamlBytes per spec.md §6's schema and resolves `{{var}}`
// template variables (SPEC_FULL.md §9) before returning a scene.Tree
// ready for scene.Validate.
func Load(yamlBytes []byte, vars map[string]string) (scene.Tree, error) {
	substituted := Substitute(string(yamlBytes), vars)

	var doc docRoot
	if err := yaml.Unmarshal([]byte(substituted), &doc); err != nil {
		return scene.Tree{}, &sferr.ParseFailure{Message: "invalid YAML scene document", Cause: err}
	}

	bg, err := parseColorValue(doc.Canvas.Background, geom.Color{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		return scene.Tree{}, err
	}
	canvas := scene.Canvas{Width: doc.Canvas.Width, Height: doc.Canvas.Height, Background: bg}

	if len(doc.Elements) == 0 {
		return scene.Tree{}, &sferr.ParseFailure{Message: "scene document has no root element"}
	}
	root, err := buildRoot(doc.Elements)
	if err != nil {
		return scene.Tree{}, err
	}
	return scene.Tree{Canvas: canvas, Root: root}, nil
}

// buildRoot builds every top-level element (spec.md §6's `elements: [Node,
// …]` is a list, not a single node) and never drops any of them silently
// (spec.md §7: "No silent layout dropping of nodes on recoverable
// errors"). A single element becomes the tree's root directly; multiple
// top-level siblings are combined into an implicit ZStack overlaying the
// canvas in document order, the natural reading of a flat sibling list
// under one canvas (e.g. a background layer plus foreground content).
func buildRoot(docs []docNode) (scene.Node, error) {
	if len(docs) == 1 {
		return buildNode(docs[0])
	}
	children := make([]scene.StackChild, len(docs))
	for i, d := range docs {
		child, err := buildNode(d)
		if err != nil {
			return nil, err
		}
		children[i] = scene.StackChild{Node: child}
	}
	return scene.NewZStack("scene-root", children), nil
}

func buildNode(d docNode) (scene.Node, error) {
	constraints, err := buildConstraints(d.Constraints)
	if err != nil {
		return nil, err
	}

	switch d.Type {
	case "text":
		props, err := buildTextProperties(d.Properties)
		if err != nil {
			return nil, err
		}
		return scene.NewText(d.ID, d.Content, props, constraints...), nil
	case "image":
		props, err := buildImageProperties(d.Properties)
		if err != nil {
			return nil, err
		}
		return scene.NewImage(d.ID, d.Source, props, constraints...), nil
	case "container":
		props, err := buildContainerProperties(d.Properties)
		if err != nil {
			return nil, err
		}
		children := make([]scene.Node, len(d.Children))
		for i, cd := range d.Children {
			children[i], err = buildNode(cd)
			if err != nil {
				return nil, err
			}
		}
		return scene.NewContainer(d.ID, props, children, constraints...), nil
	case "vstack", "hstack", "zstack":
		return buildStack(d, constraints)
	case "spacer":
		minLen, _ := d.Properties["minLength"].(float64)
		return scene.NewSpacer(d.ID, minLen), nil
	default:
		return nil, &sferr.ValidationFailure{Message: fmt.Sprintf("unknown node type %q", d.Type)}
	}
}

func buildStack(d docNode, constraints []scene.Constraint) (scene.Node, error) {
	props := buildStackProperties(d.Properties)
	children := make([]scene.StackChild, len(d.Children))
	for i, cd := range d.Children {
		child, err := buildNode(cd)
		if err != nil {
			return nil, err
		}
		sc := scene.StackChild{Node: child}
		if fi, ok := cd.Properties["flexItem"].(map[string]interface{}); ok {
			style := flexItemFromMap(fi)
			sc.FlexItem = &style
		}
		children[i] = sc
	}

	var flex *scene.FlexDirective
	if d.Flex != nil {
		f := flexDirectiveFromMap(d.Flex)
		flex = &f
	}

	var node *scene.StackNode
	switch d.Type {
	case "vstack":
		node = scene.NewVStack(d.ID, props, children, constraints...)
	case "hstack":
		node = scene.NewHStack(d.ID, props, children, constraints...)
	default:
		node = scene.NewZStack(d.ID, children, constraints...)
	}
	node.Flex = flex
	return node, nil
}

func buildConstraints(docs []docConstraint) ([]scene.Constraint, error) {
	out := make([]scene.Constraint, 0, len(docs))
	for _, d := range docs {
		if (d.Type == "width" || d.Type == "height") && isAutoSize(d.Value) {
			continue // "auto" means "no constraint; use intrinsic sizing"
		}
		c, err := buildConstraint(d)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func isAutoSize(v interface{}) bool {
	s, ok := v.(string)
	return ok && s == "auto"
}

func buildConstraint(d docConstraint) (scene.Constraint, error) {
	priority := parsePriority(d.Priority)
	target := ""
	if d.Target != nil {
		target = *d.Target
	}
	offset := 0.0
	if d.Constant != nil {
		offset = *d.Constant
	}

	switch d.Type {
	// top/bottom/leading/trailing place n adjacent to target's opposite
	// edge (spec.md §4.1's stacking semantics); alignTop/alignBottom/
	// alignLeading/alignTrailing pin n to target's *same* edge. These are
	// two distinct constraint families, not synonyms of one another.
	case "top":
		return scene.Constraint{Kind: scene.ConstraintTop, Priority: priority, Target: target, Offset: offset}, nil
	case "bottom":
		return scene.Constraint{Kind: scene.ConstraintBottom, Priority: priority, Target: target, Offset: offset}, nil
	case "leading":
		return scene.Constraint{Kind: scene.ConstraintLeading, Priority: priority, Target: target, Offset: offset}, nil
	case "trailing":
		return scene.Constraint{Kind: scene.ConstraintTrailing, Priority: priority, Target: target, Offset: offset}, nil
	case "alignTop":
		return scene.Constraint{Kind: scene.ConstraintAlignTop, Priority: priority, Target: target, Offset: offset}, nil
	case "alignBottom":
		return scene.Constraint{Kind: scene.ConstraintAlignBottom, Priority: priority, Target: target, Offset: offset}, nil
	case "alignLeading":
		return scene.Constraint{Kind: scene.ConstraintAlignLeading, Priority: priority, Target: target, Offset: offset}, nil
	case "alignTrailing":
		return scene.Constraint{Kind: scene.ConstraintAlignTrailing, Priority: priority, Target: target, Offset: offset}, nil
	case "centerX", "alignCenterX":
		return scene.Constraint{Kind: scene.ConstraintCenterX, Priority: priority, Target: target, Offset: offset}, nil
	case "centerY", "alignCenterY":
		return scene.Constraint{Kind: scene.ConstraintCenterY, Priority: priority, Target: target, Offset: offset}, nil
	case "width":
		v, pct, err := parseSizeValue(d.Value)
		if err != nil {
			return scene.Constraint{}, err
		}
		return scene.Constraint{Kind: scene.ConstraintWidth, Priority: priority, Value: v, IsPercent: pct}, nil
	case "height":
		v, pct, err := parseSizeValue(d.Value)
		if err != nil {
			return scene.Constraint{}, err
		}
		return scene.Constraint{Kind: scene.ConstraintHeight, Priority: priority, Value: v, IsPercent: pct}, nil
	case "minWidth":
		v, pct, err := parseSizeValue(d.Value)
		if err != nil {
			return scene.Constraint{}, err
		}
		return scene.Constraint{Kind: scene.ConstraintMinWidth, Priority: priority, Value: v, IsPercent: pct}, nil
	case "maxWidth":
		v, pct, err := parseSizeValue(d.Value)
		if err != nil {
			return scene.Constraint{}, err
		}
		return scene.Constraint{Kind: scene.ConstraintMaxWidth, Priority: priority, Value: v, IsPercent: pct}, nil
	case "minHeight":
		v, pct, err := parseSizeValue(d.Value)
		if err != nil {
			return scene.Constraint{}, err
		}
		return scene.Constraint{Kind: scene.ConstraintMinHeight, Priority: priority, Value: v, IsPercent: pct}, nil
	case "maxHeight":
		v, pct, err := parseSizeValue(d.Value)
		if err != nil {
			return scene.Constraint{}, err
		}
		return scene.Constraint{Kind: scene.ConstraintMaxHeight, Priority: priority, Value: v, IsPercent: pct}, nil
	case "aspectRatio":
		v, _, err := parseSizeValue(d.Value)
		if err != nil {
			return scene.Constraint{}, err
		}
		return scene.Constraint{Kind: scene.ConstraintAspectRatio, Priority: priority, Value: v}, nil
	default:
		return scene.Constraint{}, &sferr.ValidationFailure{Message: fmt.Sprintf("unknown constraint type %q", d.Type)}
	}
}

func parsePriority(s string) scene.Priority {
	switch s {
	case "required":
		return scene.PriorityRequired
	case "high":
		return scene.PriorityStrong
	case "low":
		return scene.PriorityWeak
	default:
		return scene.PriorityMedium
	}
}

// parseSizeValue implements spec.md §6's "Size value can be a number,
// 'auto', or 'NN%'." buildConstraints filters out "auto" before calling
// this, so the "auto" case here only guards direct callers (e.g.
// aspectRatio never being "auto").
func parseSizeValue(v interface{}) (value float64, isPercent bool, err error) {
	switch t := v.(type) {
	case float64:
		return t, false, nil
	case int:
		return float64(t), false, nil
	case string:
		if t == "auto" {
			return 0, false, nil
		}
		if len(t) > 0 && t[len(t)-1] == '%' {
			var pct float64
			if _, scanErr := fmt.Sscanf(t, "%f%%", &pct); scanErr != nil {
				return 0, false, &sferr.ValidationFailure{Message: fmt.Sprintf("bad percentage literal %q", t)}
			}
			return pct / 100, true, nil
		}
		return 0, false, &sferr.ValidationFailure{Message: fmt.Sprintf("bad size literal %q", t)}
	default:
		return 0, false, &sferr.ValidationFailure{Message: "size value must be a number, \"auto\", or \"NN%\""}
	}
}

func parseColorValue(v interface{}, fallback geom.Color) (geom.Color, error) {
	switch t := v.(type) {
	case nil:
		return fallback, nil
	case string:
		c, err := geom.ParseColor(t)
		if err != nil {
			return geom.Color{}, &sferr.ValidationFailure{Message: err.Error()}
		}
		return c, nil
	case map[string]interface{}:
		r := toU8(t["r"])
		g := toU8(t["g"])
		b := toU8(t["b"])
		a := uint8(255)
		if av, ok := t["a"]; ok {
			a = toU8(av)
		}
		return geom.Color{R: r, G: g, B: b, A: a}, nil
	default:
		return geom.Color{}, &sferr.ValidationFailure{Message: "color value must be a string or {r,g,b[,a]} object"}
	}
}

func toU8(v interface{}) uint8 {
	switch t := v.(type) {
	case float64:
		return uint8(geom.ClampF64(t, 0, 255))
	case int:
		return uint8(geom.ClampInt(t, 0, 255))
	default:
		return 0
	}
}
