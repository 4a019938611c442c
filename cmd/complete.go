package cmd

import (
	"github.com/etnz/taxreport"
	"github.com/etnz/taxreport/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	var columns predict.Set
	for c := taxreport.ColOrder; c <= taxreport.ColDiscount; c++ {
		columns = append(columns, c.String())
	}
	locales := predict.Set{"de", "en", "fr"}
	languages := predict.Set{"en", "de"}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"report": {
				Flags: map[string]complete.Predictor{
					"year":          predict.Something,
					"exchange":      predict.Nothing,
					"sell-to-cover": predict.Nothing,
					"exclude":       columns,
					"total-exclude": columns,
					"locale":        locales,
					"lang":          languages,
					"raw":           predict.Nothing,
				},
				Args: predict.Files("*.csv"),
			},
			"rates": {
				Flags: map[string]complete.Predictor{
					"base":   predict.Something,
					"date":   predict.Set{taxreport.Latest},
					"target": predict.Something,
					"raw":    predict.Nothing,
				},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Set(topics),
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
	}
}
