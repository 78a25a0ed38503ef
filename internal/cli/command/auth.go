package command

import (
	"strconv"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ssh"

	"github.com/yndnr/netconf-cli/internal/cli/output"
	"github.com/yndnr/netconf-cli/internal/core/domain"
	"github.com/yndnr/netconf-cli/internal/sshauth"
)

// AuthCommand returns the auth subcommand group.
func AuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "SSH authentication settings",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show method order and key pair",
				Action: authShow,
			},
		},
	}
}

type methodView struct {
	Method   domain.AuthMethod `json:"method" yaml:"method"`
	Priority int               `json:"priority" yaml:"priority"`
	Enabled  bool              `json:"enabled" yaml:"enabled"`
}

type keyView struct {
	domain.KeyPair `yaml:",inline"`
	Fingerprint    string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
}

type authView struct {
	Methods    []methodView `json:"methods" yaml:"methods"`
	Key        *keyView     `json:"key,omitempty" yaml:"key,omitempty"`
	KnownHosts string       `json:"known_hosts,omitempty" yaml:"known_hosts,omitempty"`
	HostsError string       `json:"known_hosts_error,omitempty" yaml:"known_hosts_error,omitempty"`
}

func (v authView) Table() *output.Table {
	t := &output.Table{Headers: []string{"METHOD", "PRIORITY", "ENABLED"}}
	for _, m := range v.Methods {
		t.AddRow(m.Method.String(), strconv.Itoa(m.Priority), strconv.FormatBool(m.Enabled))
	}
	if v.Key != nil {
		detail := v.Key.Fingerprint
		if v.Key.Error != "" {
			detail = v.Key.Error
		}
		t.AddRow("key", v.Key.PrivatePath, detail)
	}
	if v.KnownHosts != "" {
		status := "ok"
		if v.HostsError != "" {
			status = v.HostsError
		}
		t.AddRow("known_hosts", v.KnownHosts, status)
	}
	return t
}

func authShow(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	return rt.render(describeAuth(rt.Auth, rt.Settings.Auth.KnownHosts))
}

// describeAuth reports the method order and checks that the key pair and
// known_hosts file can actually be loaded.
func describeAuth(reg *sshauth.Registry, knownHosts string) authView {
	var v authView
	for _, p := range reg.Preferences() {
		v.Methods = append(v.Methods, methodView{Method: p.Method, Priority: p.Priority, Enabled: p.Enabled()})
	}

	if kp, ok := reg.KeyPair(); ok {
		key := &keyView{KeyPair: kp}
		if signer, err := reg.Signer(nil); err != nil {
			key.Error = err.Error()
		} else {
			key.Fingerprint = ssh.FingerprintSHA256(signer.PublicKey())
		}
		v.Key = key
	}

	if knownHosts != "" {
		v.KnownHosts = knownHosts
		if _, err := sshauth.KnownHosts(knownHosts); err != nil {
			v.HostsError = err.Error()
		}
	}
	return v
}
