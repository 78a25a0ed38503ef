package command

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/netconf-cli/internal/cli/config"
	"github.com/yndnr/netconf-cli/internal/core/domain"
)

// runCLI runs the application against home with stdin as shell input and
// returns what it printed.
func runCLI(t *testing.T, home, stdin string, args ...string) (string, error) {
	t.Helper()
	app := App()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)

	err := app.Run(append([]string{"netconf-cli", "--home", home}, args...))
	return out.String(), err
}

func configDir(home string) string {
	return filepath.Join(home, ".netconf_client")
}

func readCapabilities(t *testing.T, home string) *domain.CapabilitySet {
	t.Helper()
	doc, err := config.ReadDocument(filepath.Join(configDir(home), config.DocumentFile))
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	caps, ok := config.ParseCapabilities(config.RecognizedRoot(doc))
	if !ok {
		t.Fatal("stored document has no capabilities section")
	}
	return caps
}

func TestApp(t *testing.T) {
	app := App()
	if app.Name != "netconf-cli" {
		t.Errorf("Name = %q, want netconf-cli", app.Name)
	}

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"config", "capabilities", "auth", "history", "shell"} {
		if !names[name] {
			t.Errorf("missing command: %s", name)
		}
	}

	flags := make(map[string]bool)
	for _, f := range app.Flags {
		flags[f.Names()[0]] = true
	}
	for _, name := range []string{"home", "settings", "output", "verbose", "log-format"} {
		if !flags[name] {
			t.Errorf("missing flag: %s", name)
		}
	}
}

func TestApp_FirstRunCreatesFiles(t *testing.T) {
	home := t.TempDir()
	if _, err := runCLI(t, home, "", "capabilities", "list"); err != nil {
		t.Fatalf("run error = %v", err)
	}

	for _, name := range []string{config.HistoryFile, config.DocumentFile} {
		if _, err := os.Stat(filepath.Join(configDir(home), name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
	// The run ends with a store, so defaults are now written out.
	if got := readCapabilities(t, home); !got.Equal(domain.DefaultProvider{}.DefaultCapabilities()) {
		t.Errorf("stored capabilities = %v, want defaults", got.All())
	}
}

func TestApp_InvalidOutputFormat(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "", "-o", "xml", "config", "path"); err == nil {
		t.Error("run with -o xml should fail")
	}
}

func TestApp_SettingsFile(t *testing.T) {
	home := t.TempDir()
	settings := filepath.Join(t.TempDir(), "cli.yaml")
	metrics := filepath.Join(t.TempDir(), "netconf.prom")
	content := "document:\n  root: netconf-client\nmetrics:\n  textfile: " + metrics + "\n"
	if err := os.WriteFile(settings, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, home, "", "--settings", settings, "capabilities", "list"); err != nil {
		t.Fatalf("run error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(configDir(home), config.DocumentFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<netconf-client>") {
		t.Errorf("document root not taken from settings:\n%s", data)
	}

	prom, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(prom), `netconf_client_config_operations_total{op="store",result="ok",section="document"} 1`) {
		t.Errorf("metrics textfile =\n%s", prom)
	}

	if _, err := runCLI(t, home, "", "--settings", filepath.Join(home, "missing.yaml"), "config", "path"); err == nil {
		t.Error("run with a missing --settings file should fail")
	}
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	out, err := runCLI(t, home, "", "-o", "json", "config", "path")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	var got config.Layout
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Dir != configDir(home) || got.Document != filepath.Join(configDir(home), "config.xml") {
		t.Errorf("config path = %+v", got)
	}
}

func TestConfigShow(t *testing.T) {
	home := t.TempDir()
	if err := os.MkdirAll(configDir(home), 0700); err != nil {
		t.Fatal(err)
	}
	doc := `<client-config>
  <capabilities><capability>urn:a</capability></capabilities>
  <authentication>
    <pref><publickey>9</publickey></pref>
    <keys><key-path>/keys/id_rsa</key-path></keys>
  </authentication>
</client-config>`
	if err := os.WriteFile(filepath.Join(configDir(home), config.DocumentFile), []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, home, "", "-o", "json", "config", "show")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	var got struct {
		Source         string `json:"source"`
		Capabilities   int    `json:"capabilities"`
		Authentication []struct {
			Method   string `json:"method"`
			Priority int    `json:"priority"`
		} `json:"authentication"`
		KeyPair *domain.KeyPair `json:"key_pair"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Source != filepath.Join(configDir(home), config.DocumentFile) || got.Capabilities != 1 {
		t.Errorf("config show = %+v", got)
	}
	if len(got.Authentication) == 0 || got.Authentication[0].Method != "publickey" || got.Authentication[0].Priority != 9 {
		t.Errorf("authentication = %+v, want publickey first", got.Authentication)
	}
	if got.KeyPair == nil || got.KeyPair.PublicPath != "/keys/id_rsa.pub" {
		t.Errorf("key pair = %+v", got.KeyPair)
	}

	// The store at the end keeps the authentication section.
	data, _ := os.ReadFile(filepath.Join(configDir(home), config.DocumentFile))
	if !strings.Contains(string(data), "<key-path>/keys/id_rsa</key-path>") {
		t.Errorf("authentication section lost:\n%s", data)
	}
}
