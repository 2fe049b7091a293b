package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finances/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "display a topic of the user manual" }
func (*topicCmd) Usage() string {
	return `fin topic [<topic>...]

  Displays the given topics of the user manual, or its index. Use '*' for
  all the topics.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{""}
	}
	for _, t := range topics {
		content, err := docs.Topic(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		printMarkdown(content)
	}
	return subcommands.ExitSuccess
}
