package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/netconf-cli/internal/cli/output"
	"github.com/yndnr/netconf-cli/internal/core/domain"
)

// CapabilitiesCommand returns the capabilities subcommand group.
func CapabilitiesCommand() *cli.Command {
	return &cli.Command{
		Name:    "capabilities",
		Aliases: []string{"cap"},
		Usage:   "Manage the capabilities advertised to NETCONF servers",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List advertised capabilities",
				Action:  capabilitiesList,
			},
			{
				Name:      "add",
				Usage:     "Advertise additional capabilities",
				ArgsUsage: "URI...",
				Action:    capabilitiesAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Stop advertising capabilities",
				ArgsUsage: "URI...",
				Action:    capabilitiesRemove,
			},
			{
				Name:   "reset",
				Usage:  "Restore the built-in capability set",
				Action: capabilitiesReset,
			},
		},
	}
}

// capabilityList renders with a CAPABILITY header.
type capabilityList []string

func (l capabilityList) Table() *output.Table {
	t := &output.Table{Headers: []string{"CAPABILITY"}}
	for _, c := range l {
		t.AddRow(c)
	}
	return t
}

func capabilitiesList(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	return rt.render(capabilityList(rt.Capabilities.All()))
}

func capabilityArgs(c *cli.Context) ([]string, error) {
	if c.NArg() == 0 {
		return nil, errors.New("at least one capability URI is required")
	}
	uris := make([]string, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		uri := strings.TrimSpace(arg)
		if uri == "" {
			return nil, fmt.Errorf("empty capability URI")
		}
		uris = append(uris, uri)
	}
	return uris, nil
}

func capabilitiesAdd(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	uris, err := capabilityArgs(c)
	if err != nil {
		return err
	}
	for _, uri := range uris {
		if rt.Capabilities.Add(uri) {
			fmt.Fprintf(rt.Out, "added %s\n", uri)
		} else {
			fmt.Fprintf(rt.Out, "already advertised: %s\n", uri)
		}
	}
	return nil
}

func capabilitiesRemove(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	uris, err := capabilityArgs(c)
	if err != nil {
		return err
	}
	for _, uri := range uris {
		if rt.Capabilities.Remove(uri) {
			fmt.Fprintf(rt.Out, "removed %s\n", uri)
		} else {
			fmt.Fprintf(rt.Out, "not advertised: %s\n", uri)
		}
	}
	return nil
}

func capabilitiesReset(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	rt.Capabilities = domain.DefaultProvider{}.DefaultCapabilities()
	fmt.Fprintf(rt.Out, "restored %d built-in capabilities\n", rt.Capabilities.Len())
	return nil
}
