// Command sceneforge is the CLI adapter over the sceneforge core,
// per spec.md §6. Flag parsing and exit-code conventions are grounded
// on arran4-md2png's cmd/md2png/main.go.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/lattice-ui/sceneforge/engine"
	"github.com/lattice-ui/sceneforge/ioassets"
	"github.com/lattice-ui/sceneforge/scenedsl"
	"github.com/lattice-ui/sceneforge/sferr"
)

func main() {
	input := flag.String("input", "", "Input scene document (YAML)")
	output := flag.String("output", "out.png", "Output PNG path")
	variablesJSON := flag.String("variables", "", "Template variables as a JSON object")
	varFile := flag.String("var-file", "", "Path to a JSON file of template variables")
	validateOnly := flag.Bool("validate", false, "Validate the scene and exit without rendering")
	listVars := flag.Bool("list-vars", false, "List template variable names referenced by the scene and exit")
	assetDir := flag.String("asset-dir", ".", "Directory image `source` and font-family paths resolve against")
	flag.Parse()

	if *input == "" {
		fail(1, errors.New("--input is required"))
	}
	raw, err := os.ReadFile(*input)
	if err != nil {
		fail(1, fmt.Errorf("reading %s: %w", *input, err))
	}

	if *listVars {
		for _, name := range scenedsl.ListVars(string(raw)) {
			fmt.Println(name)
		}
		return
	}

	vars, err := loadVariables(*variablesJSON, *varFile)
	if err != nil {
		fail(1, err)
	}

	tree, err := scenedsl.Load(raw, vars)
	if err != nil {
		exitForSceneError(err)
	}

	loader := ioassets.DirLoader{Root: *assetDir}
	e := engine.New(engine.Config{FontLoader: loader, ImageLoader: loader})

	if *validateOnly {
		if err := e.Validate(tree); err != nil {
			exitForSceneError(err)
		}
		return
	}

	img, err := e.Render(context.Background(), tree)
	if err != nil {
		exitForSceneError(err)
	}

	f, err := os.Create(*output)
	if err != nil {
		fail(1, &sferr.RenderFailure{Message: "creating output file", Cause: err})
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		fail(1, &sferr.RenderFailure{Message: "encoding PNG", Cause: err})
	}
}

// loadVariables merges --var-file (applied first) and --variables
// (applied second, taking precedence), matching spec.md §6's combined
// flag surface.
func loadVariables(variablesJSON, varFile string) (map[string]string, error) {
	vars := make(map[string]string)
	if varFile != "" {
		data, err := os.ReadFile(varFile)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", varFile, err)
		}
		if err := mergeJSONVars(data, vars); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", varFile, err)
		}
	}
	if variablesJSON != "" {
		if err := mergeJSONVars([]byte(variablesJSON), vars); err != nil {
			return nil, fmt.Errorf("parsing --variables: %w", err)
		}
	}
	return vars, nil
}

func mergeJSONVars(data []byte, into map[string]string) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		into[k] = stringifyJSONValue(v)
	}
	return nil
}

func stringifyJSONValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	default:
		b, _ := json.Marshal(t)
		return strings.Trim(string(b), `"`)
	}
}

// exitForSceneError maps the sferr taxonomy to spec.md §6's exit codes:
// 2 for anything rejecting the scene itself (ValidationFailure,
// ReferenceFailure), 1 for everything else (parse/solve/render).
func exitForSceneError(err error) {
	var vf *sferr.ValidationFailure
	var rf *sferr.ReferenceFailure
	if errors.As(err, &vf) || errors.As(err, &rf) {
		fail(2, err)
	}
	fail(1, err)
}

func fail(code int, err error) {
	_, _ = os.Stderr.WriteString("sceneforge: " + err.Error() + "\n")
	os.Exit(code)
}
