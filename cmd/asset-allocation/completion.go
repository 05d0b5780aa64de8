package main

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/iwvelando/asset-allocation/pkg/validation"
)

// completion describes the command line for shell completion. Install it
// with COMP_INSTALL=1 asset-allocation.
func completion() *complete.Command {
	planFiles := predict.Or(predict.Files("*.json"), predict.Files("*.yaml"), predict.Files("*.yml"))

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.yaml"),
			"log-level": predict.Set{"debug", "info", "warn", "error"},
		},
		Sub: map[string]*complete.Command{
			"calc": {
				Flags: map[string]complete.Predictor{
					"plan":   planFiles,
					"select": predict.Something,
					"output": predict.Files("*"),
					"format": predict.Set(validation.OutputFormats),
				},
				Args: predict.Something,
			},
			"validate": {
				Flags: map[string]complete.Predictor{
					"plan":   planFiles,
					"select": predict.Something,
				},
			},
			"serve": {
				Flags: map[string]complete.Predictor{
					"port":          predict.Something,
					"dir":           predict.Dirs("*"),
					"plan":          planFiles,
					"select":        predict.Something,
					"server-config": predict.Files("*.yaml"),
					"no-browser":    predict.Nothing,
				},
			},
			"help":     {Args: predict.Set{"calc", "validate", "serve"}},
			"flags":    {},
			"commands": {},
		},
	}
}
