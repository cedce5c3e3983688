package configs

import (
	"os"
	"path/filepath"

	"github.com/illikainen/mirror/src/metadata"
	"github.com/illikainen/mirror/src/utils"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/hashicorp/hcl/v2/hclparse"
	log "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
)

// Config is the application-level configuration, as opposed to the per-run
// manifest.  It carries the settings that rarely change between runs: the
// administrative recipients, SMTP delivery, the tool binary and credentials
// for remote dispatch.
type Config struct {
	Admin       []string `json:"admin"`
	SMTPHost    string   `json:"smtp_host"`
	SMTPPort    int      `json:"smtp_port"`
	SMTPUser    string   `json:"smtp_user"`
	SMTPPass    string   `json:"smtp_password"`
	MailFrom    string   `json:"mail_from"`
	LogDir      string   `json:"log_dir"`
	Tool        string   `json:"tool"`
	SSHUser     string   `json:"ssh_user"`
	SSHPassword string   `json:"ssh_password"`
	Path        string   `json:"-"`
}

var spec = &hcldec.ObjectSpec{
	"admin":         &hcldec.AttrSpec{Name: "admin", Type: cty.List(cty.String)},
	"smtp_host":     &hcldec.AttrSpec{Name: "smtp_host", Type: cty.String},
	"smtp_port":     &hcldec.AttrSpec{Name: "smtp_port", Type: cty.Number},
	"smtp_user":     &hcldec.AttrSpec{Name: "smtp_user", Type: cty.String},
	"smtp_password": &hcldec.AttrSpec{Name: "smtp_password", Type: cty.String},
	"mail_from":     &hcldec.AttrSpec{Name: "mail_from", Type: cty.String},
	"log_dir":       &hcldec.AttrSpec{Name: "log_dir", Type: cty.String},
	"tool":          &hcldec.AttrSpec{Name: "tool", Type: cty.String},
	"ssh_user":      &hcldec.AttrSpec{Name: "ssh_user", Type: cty.String},
	"ssh_password":  &hcldec.AttrSpec{Name: "ssh_password", Type: cty.String},
}

// Load reads the HCL configuration.  A missing file is not an error when
// allowMissing is set; the defaults then apply.
func Load(path string, allowMissing bool) (*Config, error) {
	config := &Config{Path: path}

	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			config.defaults()
			return config, nil
		}
		return nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags != nil && diags.HasErrors() {
		return nil, diags
	}

	value, diags := hcldec.Decode(file.Body, spec, nil)
	if diags != nil && diags.HasErrors() {
		return nil, diags
	}

	err = utils.FromCtyValue(value, config)
	if err != nil {
		return nil, err
	}

	config.Path = path
	config.defaults()
	return config, nil
}

func (c *Config) defaults() {
	if c.Tool == "" {
		c.Tool = "robocopy"
	}
	log.Debugf("tool: %s", c.Tool)

	if c.LogDir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			cache = os.TempDir()
		}
		c.LogDir = filepath.Join(cache, metadata.Name(), "logs")
	}
	log.Debugf("log dir: %s", c.LogDir)

	if c.MailFrom == "" {
		c.MailFrom = metadata.Name() + "@localhost"
	}

	if c.SMTPPort == 0 {
		c.SMTPPort = 25
	}
}
