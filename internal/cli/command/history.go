package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/netconf-cli/internal/cli/output"
)

// HistoryCommand returns the history subcommand group.
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Shell command history",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded commands, oldest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "last",
						Aliases: []string{"n"},
						Usage:   "Show only the last `N` entries",
					},
				},
				Action: historyList,
			},
			{
				Name:   "clear",
				Usage:  "Forget all recorded commands",
				Action: historyClear,
			},
		},
	}
}

type historyEntries []string

func (h historyEntries) Table() *output.Table {
	t := &output.Table{Headers: []string{"#", "COMMAND"}}
	for i, e := range h {
		t.AddRow(strconv.Itoa(i+1), e)
	}
	return t
}

func historyList(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	entries := rt.History.Entries()
	if n := c.Int("last"); n > 0 && n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	return rt.render(historyEntries(entries))
}

func historyClear(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	n := rt.History.Len()
	rt.History.Clear()
	fmt.Fprintf(rt.Out, "cleared %d entries\n", n)
	return nil
}
