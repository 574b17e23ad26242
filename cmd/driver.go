// Package cmd is the top-level driver package for the glue generator: it
// contains the functionality for parsing command-line arguments, loading the
// generation config, and running the generation phases in order.
package cmd

import (
	"idlglue/binding"
	"idlglue/gen"
	"idlglue/idl"
	"idlglue/report"
	"idlglue/syntax"
)

// GlueGenID identifies this version of the generator.
const GlueGenID = "idlglue v0.1.0"

// Generator represents the overall state and configuration of one generation
// run.
type Generator struct {
	// The path to the glue.toml generation config.
	configPath string

	// The directory to write generated files to.
	outputDir string

	// The loaded generation config.
	config *Config
}

// builtins returns the primitive type declarations every run starts from.
// IDL files can re-declare or extend them with their own typenames.
func builtins() []idl.Definition {
	tags := []string{"void", "bool", "int", "float", "string", "wstring", "variant"}

	defns := make([]idl.Definition, len(tags))
	for ndx, tag := range tags {
		attributes := idl.Attributes{"binding_model": "pod", "podtype": tag}
		defns[ndx] = idl.NewTypename(report.Location{}, attributes, tag)
	}

	return defns
}

// fileDefns pairs one parsed input file with its top-level definitions.
type fileDefns struct {
	file  *report.File
	defns []idl.Definition
}

// Generate runs the full generation pipeline: parse every input into the
// global namespace, finalize the graph, then emit one header per input file.
// It returns the process exit code.
func (g *Generator) Generate() int {
	defer report.CatchErrors()

	global := idl.NewNamespace(report.Location{}, nil, "", builtins())

	var parsed []fileDefns
	for _, input := range g.config.Inputs {
		defns, file, err := syntax.ParseFile(input)
		if err != nil {
			report.ReportError(err)
			continue
		}

		global.AddMembers(defns)
		parsed = append(parsed, fileDefns{file, defns})
	}

	if report.AnyErrors() {
		return 1
	}

	if err := idl.Finalize(global, binding.DefaultModels()); err != nil {
		report.ReportError(err)
		return 1
	}

	headerGen := gen.NewHeaderGenerator(g.outputDir)
	for _, p := range parsed {
		writer, err := headerGen.Generate(p.file, global, p.defns)
		if err != nil {
			report.ReportError(err)
			continue
		}

		if err := writer.Write(); err != nil {
			report.ReportFatal("unable to write `%s`: %s", writer.Filename(), err.Error())
		}
	}

	if report.AnyErrors() {
		return 1
	}

	return 0
}

// RunGenerator is the main entry point for the glue generator.  This should
// be called directly from main.
func RunGenerator() int {
	g := NewGeneratorFromArgs()

	if !g.LoadConfig() {
		return 1
	}

	code := g.Generate()

	// A panic recovered by CatchErrors leaves Generate's return zeroed, so
	// the error latch decides the exit code.
	if code == 0 && report.AnyErrors() {
		return 1
	}

	return code
}
