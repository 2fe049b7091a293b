package cmd

import (
	"github.com/etnz/finances/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog"
)

// Complete runs the shell completion of the fin command when the shell asks
// for it, and returns otherwise.
func Complete() {
	global := map[string]complete.Predictor{
		"config":   predict.Files("*.yaml"),
		"book":     predict.Files("*.jsonl"),
		"currency": predict.Something,
		"v":        predict.Nothing,
	}
	cmd := &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"validate": {Flags: map[string]complete.Predictor{"f": predict.Files("*.json")}},
			"record":   {Flags: map[string]complete.Predictor{"f": predict.Files("*.json"), "id": predict.Something}},
			"delete":   {Flags: map[string]complete.Predictor{"id": predict.Something}},
			"ledger": {Flags: map[string]complete.Predictor{
				"a":   complete.PredictFunc(predictAccounts),
				"s":   predict.Something,
				"d":   predict.Something,
				"p":   predict.Set{"day", "week", "month", "quarter", "year"},
				"asc": predict.Nothing,
			}},
			"balances": {},
			"rates":    {Args: predict.Something},
			"topic":    {Args: complete.PredictFunc(predictTopics)},
		},
	}
	cmd.Complete("fin")
}

func predictTopics(prefix string) []string {
	topics, _ := docs.Topics()
	return topics
}

// predictAccounts predicts the account IDs of the configured book.
func predictAccounts(prefix string) []string {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	book, err := DecodeBook(cfg)
	if err != nil {
		return nil
	}
	var ids []string
	for _, acc := range book.Accounts() {
		ids = append(ids, acc.ID)
	}
	return ids
}
