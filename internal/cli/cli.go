package cli

import (
	"github.com/jessevdk/go-flags"

	"codeplug-audit/internal/config"
)

// Option defines command line options. Zero values leave the configuration
// untouched.
type Option struct {
	Config        string `long:"config" description:"YAML configuration file"`
	Dir           string `short:"d" long:"dir" description:"directory holding the codeplug exports"`
	Pattern       string `short:"p" long:"pattern" description:"file pattern relative to the directory"`
	Output        string `short:"o" long:"output" description:"CSV report path"`
	Catalog       string `short:"c" long:"catalog" description:"rule catalog YAML, the built-in catalog when empty"`
	Workers       int    `short:"w" long:"workers" description:"number of files audited concurrently"`
	LogLevel      string `short:"l" long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	InventoryURL  string `long:"inventory-url" description:"asset inventory API base URL"`
	InventoryFile string `long:"inventory-file" description:"local inventory CSV used when the API is unavailable"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "auditor"
	parser.Usage = "[OPTIONS] [dir]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	if len(rest) > 0 && opt.Dir == "" {
		opt.Dir = rest[0]
	}

	return opt, nil
}

// IsHelp reports whether err means the help text was printed.
func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}

// Apply overrides cfg with the options that were set.
func (o *Option) Apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.InputDir, o.Dir)
	set(&cfg.Pattern, o.Pattern)
	set(&cfg.Output, o.Output)
	set(&cfg.CatalogPath, o.Catalog)
	set(&cfg.LogLevel, o.LogLevel)
	set(&cfg.Inventory.URL, o.InventoryURL)
	set(&cfg.Inventory.File, o.InventoryFile)
	if o.Workers != 0 {
		cfg.Workers = o.Workers
	}
}
